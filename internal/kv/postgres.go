package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS ledger_kv (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectValueSQL = `SELECT value FROM ledger_kv WHERE key = $1`
	upsertValueSQL = `INSERT INTO ledger_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// PostgresStore keeps values in the ledger_kv table.
type PostgresStore struct {
	querier Querier
}

// NewPostgresStore builds a store on top of a pool or transaction.
func NewPostgresStore(q Querier) *PostgresStore {
	return &PostgresStore{querier: q}
}

// EnsureSchema creates the ledger_kv table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.querier.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create ledger_kv: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.querier.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.querier.Exec(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection when the querier supports it.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if p, ok := s.querier.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
