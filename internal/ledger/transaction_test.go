package ledger

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTransactionJSONAbsentParties(t *testing.T) {
	tx := Transaction{
		ID:       "tx-1",
		Date:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Type:     TypeDeposit,
		Amount:   dec(50),
		Receiver: "w1",
		Status:   StatusCompleted,
	}

	raw, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	if !strings.Contains(s, `"amount":50,`) {
		t.Fatalf("amount should be a JSON number: %s", s)
	}
	if !strings.Contains(s, `"sender":null`) || !strings.Contains(s, `"receiver":"w1"`) {
		t.Fatalf("unexpected encoding: %s", s)
	}
	if strings.Contains(s, `"reason"`) || strings.Contains(s, `"note"`) {
		t.Fatalf("empty note and reason should be omitted: %s", s)
	}

	var got Transaction
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Sender != "" || got.Receiver != "w1" || !got.Amount.Equal(tx.Amount) || !got.Date.Equal(tx.Date) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestTransactionJSONFailureEncoding(t *testing.T) {
	raw := `{"id":"tx-2","date":"2026-03-01T12:00:00Z","type":"withdraw","amount":"50","sender":"w1","status":"failed","note":"rent","reason":"insufficient_funds"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tx.Failed() || tx.Reason != ReasonInsufficientFunds || tx.Receiver != "" || tx.Note != "rent" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if !tx.Involves("w1") || tx.Involves("") {
		t.Fatal("involves mismatch")
	}
}

func TestTransactionJSONNumericAmount(t *testing.T) {
	raw := `{"id":"tx-3","date":"2026-03-01T12:00:00Z","type":"fund","amount":120.75,"sender":"a","receiver":"b","status":"completed"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tx.Amount.String() != "120.75" {
		t.Fatalf("unexpected amount %s", tx.Amount)
	}

	var bad Transaction
	if err := json.Unmarshal([]byte(`{"id":"tx-4","amount":"lots"}`), &bad); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
