package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/nexus-network/ledger/internal/config"
	"github.com/nexus-network/ledger/internal/kv"
	"github.com/nexus-network/ledger/internal/logging"
)

func TestOpenBackendMemory(t *testing.T) {
	b := OpenBackend(context.Background(), config.Config{StoreDriver: config.DriverMemory}, logging.Discard())
	defer b.Close()

	if _, ok := b.Store.(*kv.Memory); !ok || b.Cache != nil {
		t.Fatalf("expected memory store without cache, got %T / %v", b.Store, b.Cache)
	}
}

func TestOpenBackendRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{StoreDriver: config.DriverRedis, RedisURL: "redis://" + mr.Addr(), RedisKeyPrefix: "nexus:"}

	b := OpenBackend(context.Background(), cfg, logging.Discard())
	defer b.Close()

	if _, ok := b.Store.(*kv.RedisStore); !ok || b.Cache == nil || b.Driver != config.DriverRedis {
		t.Fatalf("expected redis store, got %T (%s)", b.Store, b.Driver)
	}
	if err := b.Store.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("nexus:k") {
		t.Fatal("expected prefixed key in redis")
	}
}

func TestOpenBackendSQLite(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "ledger.db")}

	b := OpenBackend(context.Background(), cfg, logging.Discard())
	if _, ok := b.Store.(*kv.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", b.Store)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenBackendDegradesToMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cfg := config.Config{StoreDriver: config.DriverRedis, RedisURL: "redis://" + addr}

	b := OpenBackend(context.Background(), cfg, logging.Discard())
	defer b.Close()

	if _, ok := b.Store.(*kv.Memory); !ok || b.Driver != config.DriverMemory || b.Cache != nil {
		t.Fatalf("expected memory fallback, got %T (%s)", b.Store, b.Driver)
	}
}
