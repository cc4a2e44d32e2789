package wallet

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store holds the authoritative current balances in their original order.
type Store struct {
	mu      sync.RWMutex
	order   []string
	wallets map[string]Wallet
	dirty   bool
}

// NewStore builds a store from the provided wallets. When an id repeats, the
// first occurrence wins.
func NewStore(wallets []Wallet) *Store {
	s := &Store{
		order:   make([]string, 0, len(wallets)),
		wallets: make(map[string]Wallet, len(wallets)),
	}
	for _, w := range wallets {
		if _, exists := s.wallets[w.ID]; exists {
			continue
		}
		s.order = append(s.order, w.ID)
		s.wallets[w.ID] = w
	}
	return s
}

// Find returns the wallet with the given id.
func (s *Store) Find(id string) (Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	return w, ok
}

// ApplyDelta adds delta to the wallet balance and returns the updated wallet.
// The resulting balance is not re-validated here.
func (s *Store) ApplyDelta(id string, delta decimal.Decimal) (Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[id]
	if !ok {
		return Wallet{}, false
	}
	w.Balance = w.Balance.Add(delta)
	s.wallets[id] = w
	s.dirty = true
	return w, true
}

// List returns a snapshot of all wallets in storage order.
func (s *Store) List() []Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wallet, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.wallets[id])
	}
	return out
}

// Len reports the number of wallets held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Dirty reports whether balances changed since the last MarkClean.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// MarkClean clears the dirty flag after a successful write.
func (s *Store) MarkClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}
