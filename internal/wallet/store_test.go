package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testWallets() []Wallet {
	return []Wallet{
		{ID: "w1", Owner: "One", Balance: decimal.NewFromInt(100)},
		{ID: "w2", Owner: "Two", Balance: decimal.Zero},
		{ID: "w3", Owner: "Three", Balance: decimal.NewFromInt(5)},
	}
}

func TestStoreFind(t *testing.T) {
	s := NewStore(testWallets())

	w, ok := s.Find("w1")
	if !ok {
		t.Fatal("expected w1 to exist")
	}
	if w.Owner != "One" || !w.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected wallet: %+v", w)
	}

	if _, ok := s.Find("missing"); ok {
		t.Fatal("expected missing wallet to be absent")
	}
}

func TestStoreApplyDeltaMarksDirty(t *testing.T) {
	s := NewStore(testWallets())
	if s.Dirty() {
		t.Fatal("new store should be clean")
	}

	w, ok := s.ApplyDelta("w1", decimal.NewFromInt(-40))
	if !ok {
		t.Fatal("expected apply to succeed")
	}
	if !w.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected balance 60, got %s", w.Balance)
	}
	if !s.Dirty() {
		t.Fatal("expected store to be dirty after apply")
	}

	s.MarkClean()
	if s.Dirty() {
		t.Fatal("expected store to be clean after MarkClean")
	}
}

func TestStoreApplyDeltaUnknownWallet(t *testing.T) {
	s := NewStore(testWallets())
	if _, ok := s.ApplyDelta("missing", decimal.NewFromInt(10)); ok {
		t.Fatal("expected apply on unknown wallet to fail")
	}
	if s.Dirty() {
		t.Fatal("unknown wallet must not mark the store dirty")
	}
}

func TestStoreListKeepsOrder(t *testing.T) {
	s := NewStore(testWallets())
	s.ApplyDelta("w3", decimal.NewFromInt(1))
	s.ApplyDelta("w1", decimal.NewFromInt(1))

	got := s.List()
	want := []string{"w1", "w2", "w3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d wallets, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestStoreListIsSnapshot(t *testing.T) {
	s := NewStore(testWallets())
	list := s.List()
	list[0].Balance = decimal.NewFromInt(999)

	w, _ := s.Find("w1")
	if !w.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("mutating the snapshot changed the store: %s", w.Balance)
	}
}

func TestNewStoreDuplicateKeepsFirst(t *testing.T) {
	s := NewStore([]Wallet{
		{ID: "w1", Owner: "first", Balance: decimal.NewFromInt(1)},
		{ID: "w1", Owner: "second", Balance: decimal.NewFromInt(2)},
	})
	if s.Len() != 1 {
		t.Fatalf("expected 1 wallet, got %d", s.Len())
	}
	w, _ := s.Find("w1")
	if w.Owner != "first" {
		t.Fatalf("expected first occurrence, got %s", w.Owner)
	}
}
