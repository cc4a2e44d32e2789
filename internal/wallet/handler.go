package wallet

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Reader exposes the read-only wallet views of the ledger.
type Reader interface {
	Wallets() []Wallet
	Wallet(id string) (Wallet, bool)
}

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	reader Reader
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(reader Reader) *Handler {
	return &Handler{reader: reader}
}

// List returns every wallet in storage order.
func (h *Handler) List(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallets": h.reader.Wallets(),
	})
}

// Get returns a single wallet by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	walletID := c.Params("walletId")
	w, ok := h.reader.Wallet(walletID)
	if !ok {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}
	return c.Status(http.StatusOK).JSON(w)
}
