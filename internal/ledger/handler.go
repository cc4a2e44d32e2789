package ledger

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes ledger operations over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a ledger handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type walletRequest struct {
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`
}

type transferRequest struct {
	FromWalletID string          `json:"from_wallet_id"`
	ToWalletID   string          `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note"`
}

type fundRequest struct {
	InvestorWalletID     string          `json:"investor_wallet_id"`
	EntrepreneurWalletID string          `json:"entrepreneur_wallet_id"`
	Amount               decimal.Decimal `json:"amount"`
	Note                 string          `json:"note"`
}

// Deposit credits a wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req walletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return respond(c, h.service.Deposit(c.UserContext(), req.WalletID, req.Amount, req.Note))
}

// Withdraw debits a wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req walletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return respond(c, h.service.Withdraw(c.UserContext(), req.WalletID, req.Amount, req.Note))
}

// Transfer moves funds between two wallets.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return respond(c, h.service.Transfer(c.UserContext(), req.FromWalletID, req.ToWalletID, req.Amount, req.Note))
}

// Fund moves funds from an investor to an entrepreneur.
func (h *Handler) Fund(c *fiber.Ctx) error {
	var req fundRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return respond(c, h.service.FundDeal(c.UserContext(), req.InvestorWalletID, req.EntrepreneurWalletID, req.Amount, req.Note))
}

// Transactions lists the log newest first, optionally filtered by wallet_id.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	var txs []Transaction
	if walletID := c.Query("wallet_id"); walletID != "" {
		txs = h.service.TransactionsFor(walletID)
	} else {
		txs = h.service.Transactions()
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": txs})
}

// Failed transactions are still recorded, so they are returned as data
// alongside a 422.
func respond(c *fiber.Ctx, tx Transaction) error {
	status := http.StatusCreated
	if tx.Failed() {
		status = http.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(tx)
}
