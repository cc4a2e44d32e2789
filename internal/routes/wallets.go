package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexus-network/ledger/internal/wallet"
)

// RegisterWalletRoutes wires the read-only wallet endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallets", h.List)
	r.Get("/wallets/:walletId", h.Get)
}
