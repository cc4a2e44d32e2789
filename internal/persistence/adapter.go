// Package persistence maps the ledger's wallet set and transaction log onto a
// key-value store as whole JSON documents.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/nexus-network/ledger/internal/kv"
	"github.com/nexus-network/ledger/internal/ledger"
	"github.com/nexus-network/ledger/internal/wallet"
)

const (
	WalletsKey      = "nexus_wallets_v1"
	TransactionsKey = "nexus_tx_v1"
)

// Seed returns the wallets a fresh ledger starts with.
func Seed() []wallet.Wallet {
	return []wallet.Wallet{
		{ID: "wallet_user", Owner: "You", Balance: decimal.NewFromInt(2500)},
		{ID: "wallet_investor", Owner: "Investor", Balance: decimal.NewFromInt(10000)},
		{ID: "wallet_entrepreneur", Owner: "Entrepreneur", Balance: decimal.NewFromInt(500)},
	}
}

// Adapter implements ledger.Persister over a kv.Store. Loads never fail:
// anything missing or unreadable falls back to the seed wallets or an empty
// log.
type Adapter struct {
	store  kv.Store
	logger *slog.Logger
}

var _ ledger.Persister = (*Adapter)(nil)

// NewAdapter builds an adapter over store.
func NewAdapter(store kv.Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger}
}

func (a *Adapter) LoadWallets(ctx context.Context) []wallet.Wallet {
	var wallets []wallet.Wallet
	if !a.load(ctx, WalletsKey, &wallets) {
		return Seed()
	}
	if err := validateWallets(wallets); err != nil {
		a.logger.Warn("stored wallets rejected", "key", WalletsKey, "error", err)
		return Seed()
	}
	return wallets
}

func (a *Adapter) LoadTransactions(ctx context.Context) []ledger.Transaction {
	var txs []ledger.Transaction
	if !a.load(ctx, TransactionsKey, &txs) {
		return []ledger.Transaction{}
	}
	if err := validateTransactions(txs); err != nil {
		a.logger.Warn("stored transactions rejected", "key", TransactionsKey, "error", err)
		return []ledger.Transaction{}
	}
	return txs
}

func (a *Adapter) SaveWallets(ctx context.Context, wallets []wallet.Wallet) error {
	return a.save(ctx, WalletsKey, wallets)
}

func (a *Adapter) SaveTransactions(ctx context.Context, txs []ledger.Transaction) error {
	return a.save(ctx, TransactionsKey, txs)
}

// load decodes the value at key into out and reports whether it should be
// used. A JSON null counts as absent.
func (a *Adapter) load(ctx context.Context, key string, out any) bool {
	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false
	}
	if err != nil {
		a.logger.Warn("read stored record failed", "key", key, "error", err)
		return false
	}
	if string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.logger.Warn("stored record is malformed", "key", key, "error", err)
		return false
	}
	return true
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func validateWallets(wallets []wallet.Wallet) error {
	seen := make(map[string]struct{}, len(wallets))
	for i, w := range wallets {
		if w.ID == "" {
			return fmt.Errorf("wallet %d has no id", i)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("duplicate wallet id %q", w.ID)
		}
		seen[w.ID] = struct{}{}
		if w.Balance.IsNegative() {
			return fmt.Errorf("wallet %q has negative balance %s", w.ID, w.Balance)
		}
	}
	return nil
}

func validateTransactions(txs []ledger.Transaction) error {
	for i, tx := range txs {
		if tx.ID == "" {
			return fmt.Errorf("transaction %d has no id", i)
		}
		if !tx.Type.Valid() {
			return fmt.Errorf("transaction %q has unknown type %q", tx.ID, tx.Type)
		}
		if !tx.Status.Valid() {
			return fmt.Errorf("transaction %q has unknown status %q", tx.ID, tx.Status)
		}
	}
	return nil
}
