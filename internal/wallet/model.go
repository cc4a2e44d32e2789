package wallet

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wallet is an account-like balance holder. Balance never goes below zero;
// the ledger rejects operations that would overdraw it.
type Wallet struct {
	ID      string          `json:"id"`
	Owner   string          `json:"owner"`
	Balance decimal.Decimal `json:"balance"`
}

// MarshalJSON writes the balance as a JSON number. Decoding accepts both
// numbers and quoted strings through decimal.Decimal.
func (w Wallet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string      `json:"id"`
		Owner   string      `json:"owner"`
		Balance json.Number `json:"balance"`
	}{
		ID:      w.ID,
		Owner:   w.Owner,
		Balance: json.Number(w.Balance.String()),
	})
}
