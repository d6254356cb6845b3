// Package webapi exposes the ledger engine over HTTP with Fiber. It is a
// thin boundary: inputs are bound and handed to the store, entities and
// problem details come back. Authentication and role checks are a concern
// of the deployment in front of this API.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soldeapp/clientledger/pkg/ledger"
)

// New builds the Fiber app with all routes registered.
func New(store *ledger.Store, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "clientledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	ClientRoutes(app, store, logger)
	TransactionRoutes(app, store, logger)

	return app
}
