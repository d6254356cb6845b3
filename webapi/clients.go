package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/soldeapp/clientledger/pkg/ledger"
)

// ClientRoutes registers the client CRUD and query endpoints.
//
// Routes:
//   - POST   /clients             : create a client
//   - GET    /clients             : list clients in insertion order
//   - GET    /clients/search?q=   : search by company, contact or sector
//   - GET    /clients/sectors     : client counts per sector
//   - GET    /clients/:id         : fetch one client
//   - PUT    /clients/:id         : partial update
//   - DELETE /clients/:id         : remove a client and its transactions
//   - GET    /clients/:id/stats   : totals and current balance
//
// Identity and role checks belong to the caller's stack, not this API.
func ClientRoutes(app *fiber.App, store *ledger.Store, logger *slog.Logger) {
	app.Post("/clients", CreateClient(store, logger))
	app.Get("/clients", ListClients(store))
	app.Get("/clients/search", SearchClientsHandler(store))
	app.Get("/clients/sectors", SectorCountsHandler(store))
	app.Get("/clients/:id", GetClient(store))
	app.Put("/clients/:id", UpdateClient(store, logger))
	app.Delete("/clients/:id", DeleteClient(store, logger))
	app.Get("/clients/:id/stats", ClientStats(store))
}

// CreateClient returns a handler that validates and adds a new client.
func CreateClient(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindBody[domain.CreateClientInput](c)
		if input == nil {
			return err
		}
		client, err := store.AddClient(*input)
		if err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("client created but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "client created", client)
	}
}

// ListClients returns a handler listing all clients in insertion order.
func ListClients(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "clients", store.ListClients())
	}
}

// SearchClientsHandler returns a handler matching clients against ?q=.
func SearchClientsHandler(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matched := ledger.SearchClients(store.ListClients(), c.Query("q"))
		return SuccessResponseJSON(c, fiber.StatusOK, "clients", matched)
	}
}

// SectorCountsHandler returns a handler tallying clients per sector.
func SectorCountsHandler(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts := ledger.SectorCounts(store.ListClients())
		return SuccessResponseJSON(c, fiber.StatusOK, "sectors", counts)
	}
}

// GetClient returns a handler fetching a single client by id.
func GetClient(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		client, ok := store.FindClientByID(id)
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusNotFound, "Not found", "client not found")
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "client", client)
	}
}

// UpdateClient returns a handler applying a partial client edit.
func UpdateClient(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		input, err := BindBody[domain.UpdateClientInput](c)
		if input == nil {
			return err
		}
		client, err := store.UpdateClient(id, *input)
		if err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("client updated but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "client updated", client)
	}
}

// DeleteClient returns a handler removing a client and, with it, every
// transaction in its partition.
func DeleteClient(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		if err := store.RemoveClient(id); err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("client removed but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "client removed", nil)
	}
}

// clientStatsResponse is the per-client aggregate view.
type clientStatsResponse struct {
	Balance decimal.Decimal `json:"balance"`
	ledger.Totals
}

// ClientStats returns a handler with totals and the current balance for
// one client.
func ClientStats(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		if _, ok := store.FindClientByID(id); !ok {
			return ErrorResponseJSON(c, fiber.StatusNotFound, "Not found", "client not found")
		}
		transactions := store.ListTransactions(id)
		stats := clientStatsResponse{
			Balance: ledger.Balance(transactions),
			Totals:  ledger.Summarize(transactions),
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "client stats", stats)
	}
}
