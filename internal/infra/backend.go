package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nexus-network/ledger/internal/config"
	"github.com/nexus-network/ledger/internal/kv"
)

// Backend holds the ledger snapshot store and the optional Redis client used
// for request idempotency.
type Backend struct {
	Store  kv.Store
	Cache  *redis.Client
	Driver string

	closers []func() error
}

// OpenBackend connects the store selected by cfg.StoreDriver. A store that
// cannot be reached is replaced by kv.Memory so the ledger still starts with
// seed data. The Redis client is connected whenever REDIS_URL is set.
func OpenBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Backend{}

	if cfg.RedisURL != "" {
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("redis unavailable", "error", err)
		} else {
			b.Cache = client
			b.closers = append(b.closers, client.Close)
		}
	}

	store, err := b.openStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable, falling back to memory", "driver", cfg.StoreDriver, "error", err)
		store = kv.NewMemory()
		b.Driver = config.DriverMemory
	} else {
		b.Driver = cfg.StoreDriver
	}
	b.Store = store
	logger.Info("ledger store ready", "driver", b.Driver)
	return b
}

func (b *Backend) openStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		if b.Cache == nil {
			return nil, fmt.Errorf("redis client not connected")
		}
		return kv.NewRedisStore(b.Cache, cfg.RedisKeyPrefix), nil
	case config.DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := kv.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() error { pool.Close(); return nil })
		return store, nil
	case config.DriverSQLite:
		store, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, store.Close)
		return store, nil
	case config.DriverMemory, "":
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases every connection the backend opened, newest first.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
