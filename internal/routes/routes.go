package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/nexus-network/ledger/internal/config"
	"github.com/nexus-network/ledger/internal/kv"
	"github.com/nexus-network/ledger/internal/ledger"
	"github.com/nexus-network/ledger/internal/middleware"
	"github.com/nexus-network/ledger/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Ledger *ledger.Service
	Store  kv.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Ledger == nil {
		return fmt.Errorf("ledger service is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	// Outside of dev a retried POST must never be applied twice.
	if !d.Cfg.IsDev() && d.Cache == nil {
		return fmt.Errorf("redis is required for idempotency when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.RequestIDFrom(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterWalletRoutes(api, wallet.NewHandler(d.Ledger))
	RegisterLedgerRoutes(api, ledger.NewHandler(d.Ledger))

	return nil
}
