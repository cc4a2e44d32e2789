package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexus-network/ledger/internal/ledger"
)

// RegisterLedgerRoutes wires the balance-affecting operations and the log.
func RegisterLedgerRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/deposits", h.Deposit)
	r.Post("/withdrawals", h.Withdraw)
	r.Post("/transfers", h.Transfer)
	r.Post("/fundings", h.Fund)
	r.Get("/transactions", h.Transactions)
}
