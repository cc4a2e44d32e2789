package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "PORT", "LOG_LEVEL", "STORE_DRIVER", "DATABASE_URL",
		"REDIS_URL", "REDIS_KEY_PREFIX", "SQLITE_PATH", "SHUTDOWN_TIMEOUT_SECONDS",
		"SHUTDOWN_TIMEOUT", "IDEMPOTENCY_TTL_SECONDS", "IDEMPOTENCY_TTL",
		"STORE_TIMEOUT", "NOTIFY_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != DriverMemory || cfg.Address() != ":8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownPeriod != 10*time.Second || cfg.IdempotencyTTL != 24*time.Hour || cfg.StoreTimeout != 2*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.NotifyWorkers != 4 || cfg.RedisKeyPrefix != "nexus:" || !cfg.IsDev() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/nexus.db")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("IDEMPOTENCY_TTL", "90m")
	t.Setenv("STORE_TIMEOUT", "500ms")
	t.Setenv("NOTIFY_WORKERS", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address() != ":9090" || cfg.LogLevel != "debug" || cfg.StoreDriver != DriverSQLite || cfg.IsDev() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ShutdownPeriod != 3*time.Second {
		t.Fatalf("seconds variant should win, got %s", cfg.ShutdownPeriod)
	}
	if cfg.IdempotencyTTL != 90*time.Minute || cfg.StoreTimeout != 500*time.Millisecond || cfg.NotifyWorkers != 16 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		want string
	}{
		"RedisWithoutURL":    {map[string]string{"STORE_DRIVER": "redis"}, "REDIS_URL"},
		"PostgresWithoutURL": {map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		"SQLiteWithoutPath":  {map[string]string{"STORE_DRIVER": "sqlite"}, "SQLITE_PATH"},
		"UnknownDriver":      {map[string]string{"STORE_DRIVER": "mongo"}, "unknown STORE_DRIVER"},
		"BadShutdown":        {map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "soon"}, "SHUTDOWN_TIMEOUT_SECONDS"},
		"BadTTL":             {map[string]string{"IDEMPOTENCY_TTL": "forever"}, "IDEMPOTENCY_TTL"},
		"ZeroWorkers":        {map[string]string{"NOTIFY_WORKERS": "0"}, "NOTIFY_WORKERS"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
