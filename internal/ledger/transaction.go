package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of one attempted operation. Sender and
// Receiver hold wallet ids; an empty string means absent.
type Transaction struct {
	ID       string
	Date     time.Time
	Type     Type
	Amount   decimal.Decimal
	Sender   string
	Receiver string
	Status   Status
	Note     string
	Reason   Reason
}

// Completed reports whether the transaction committed its balance changes.
func (t Transaction) Completed() bool { return t.Status == StatusCompleted }

// Failed reports whether the transaction was rejected.
func (t Transaction) Failed() bool { return t.Status == StatusFailed }

// Involves reports whether the wallet is the sender or receiver.
func (t Transaction) Involves(walletID string) bool {
	return walletID != "" && (t.Sender == walletID || t.Receiver == walletID)
}

type transactionJSON struct {
	ID       string      `json:"id"`
	Date     time.Time   `json:"date"`
	Type     Type        `json:"type"`
	Amount   json.Number `json:"amount"`
	Sender   *string     `json:"sender"`
	Receiver *string     `json:"receiver"`
	Status   Status      `json:"status"`
	Note     string      `json:"note,omitempty"`
	Reason   Reason      `json:"reason,omitempty"`
}

// MarshalJSON encodes absent parties as null and the amount as a number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:       t.ID,
		Date:     t.Date,
		Type:     t.Type,
		Amount:   json.Number(t.Amount.String()),
		Sender:   optional(t.Sender),
		Receiver: optional(t.Receiver),
		Status:   t.Status,
		Note:     t.Note,
		Reason:   t.Reason,
	})
}

// UnmarshalJSON accepts null or missing parties as absent, and the amount
// as either a number or a quoted string.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount := decimal.Zero
	if raw.Amount != "" {
		var err error
		if amount, err = decimal.NewFromString(raw.Amount.String()); err != nil {
			return fmt.Errorf("transaction amount: %w", err)
		}
	}
	*t = Transaction{
		ID:     raw.ID,
		Date:   raw.Date,
		Type:   raw.Type,
		Amount: amount,
		Status: raw.Status,
		Note:   raw.Note,
		Reason: raw.Reason,
	}
	if raw.Sender != nil {
		t.Sender = *raw.Sender
	}
	if raw.Receiver != nil {
		t.Receiver = *raw.Receiver
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
