package ledger

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/nexus-network/ledger/internal/wallet"
)

// memoryPersister keeps the last saved snapshots in process memory.
type memoryPersister struct {
	mu           sync.RWMutex
	wallets      []wallet.Wallet
	transactions []Transaction
}

func newMemoryPersister(wallets []wallet.Wallet) *memoryPersister {
	return &memoryPersister{wallets: slices.Clone(wallets)}
}

func (p *memoryPersister) LoadWallets(_ context.Context) []wallet.Wallet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.wallets)
}

func (p *memoryPersister) LoadTransactions(_ context.Context) []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.transactions)
}

func (p *memoryPersister) SaveWallets(_ context.Context, wallets []wallet.Wallet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wallets = slices.Clone(wallets)
	return nil
}

func (p *memoryPersister) SaveTransactions(_ context.Context, transactions []Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = slices.Clone(transactions)
	return nil
}

// NewInMemory builds a Service over the given wallets with no durable
// storage. Useful for tests and local development.
func NewInMemory(logger *slog.Logger, wallets ...wallet.Wallet) *Service {
	return NewService(context.Background(), newMemoryPersister(wallets), Options{Logger: logger})
}
