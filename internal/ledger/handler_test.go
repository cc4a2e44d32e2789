package ledger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nexus-network/ledger/internal/wallet"
)

func newHandlerApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc := newTestService(t,
		wallet.Wallet{ID: "investor", Owner: "Investor", Balance: dec(1000)},
		wallet.Wallet{ID: "founder", Owner: "Founder", Balance: dec(10)},
	)
	h := NewHandler(svc)
	app := fiber.New()
	app.Post("/deposits", h.Deposit)
	app.Post("/withdrawals", h.Withdraw)
	app.Post("/transfers", h.Transfer)
	app.Post("/fundings", h.Fund)
	app.Get("/transactions", h.Transactions)
	return app, svc
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, Transaction) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var tx Transaction
	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusUnprocessableEntity {
		if err := json.Unmarshal(raw, &tx); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp, tx
}

func TestHandlerDeposit(t *testing.T) {
	app, svc := newHandlerApp(t)

	resp, tx := post(t, app, "/deposits", `{"wallet_id":"founder","amount":"12.50","note":"topup"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if tx.Type != TypeDeposit || !tx.Completed() || tx.Receiver != "founder" || tx.Sender != "" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	w, _ := svc.Wallet("founder")
	if w.Balance.String() != "22.5" {
		t.Fatalf("expected balance 22.5, got %s", w.Balance)
	}
}

func TestHandlerWithdrawFailureIsData(t *testing.T) {
	app, svc := newHandlerApp(t)

	resp, tx := post(t, app, "/withdrawals", `{"wallet_id":"founder","amount":50,"note":"rent"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if tx.Reason != ReasonInsufficientFunds || tx.Note != "rent" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if n := len(svc.Transactions()); n != 1 {
		t.Fatalf("expected failed attempt to be recorded, got %d", n)
	}
}

func TestHandlerTransferAndFund(t *testing.T) {
	app, svc := newHandlerApp(t)

	resp, tx := post(t, app, "/transfers", `{"from_wallet_id":"investor","to_wallet_id":"founder","amount":100}`)
	if resp.StatusCode != http.StatusCreated || tx.Type != TypeTransfer {
		t.Fatalf("unexpected transfer response %d: %+v", resp.StatusCode, tx)
	}
	resp, tx = post(t, app, "/fundings", `{"investor_wallet_id":"investor","entrepreneur_wallet_id":"founder","amount":200,"note":"seed"}`)
	if resp.StatusCode != http.StatusCreated || tx.Type != TypeFund || tx.Note != "seed" {
		t.Fatalf("unexpected fund response %d: %+v", resp.StatusCode, tx)
	}
	inv, _ := svc.Wallet("investor")
	fnd, _ := svc.Wallet("founder")
	if !inv.Balance.Equal(dec(700)) || !fnd.Balance.Equal(dec(310)) {
		t.Fatalf("unexpected balances: investor=%s founder=%s", inv.Balance, fnd.Balance)
	}
}

func TestHandlerBadBodyRecordsNothing(t *testing.T) {
	app, svc := newHandlerApp(t)

	resp, _ := post(t, app, "/transfers", `{"from_wallet_id":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if n := len(svc.Transactions()); n != 0 {
		t.Fatalf("expected no transactions, got %d", n)
	}
}

func TestHandlerTransactionsFilter(t *testing.T) {
	app, _ := newHandlerApp(t)
	post(t, app, "/deposits", `{"wallet_id":"investor","amount":1}`)
	post(t, app, "/deposits", `{"wallet_id":"founder","amount":1}`)

	for path, want := range map[string]int{"/transactions": 2, "/transactions?wallet_id=founder": 1, "/transactions?wallet_id=ghost": 0} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		var body struct {
			Transactions []Transaction `json:"transactions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if body.Transactions == nil || len(body.Transactions) != want {
			t.Fatalf("%s: expected %d transactions, got %v", path, want, body.Transactions)
		}
	}
}
