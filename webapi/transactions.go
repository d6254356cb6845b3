package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/soldeapp/clientledger/pkg/ledger"
)

// TransactionRoutes registers the ledger mutation and query endpoints.
//
// Routes:
//   - GET    /clients/:id/transactions : chronological list, ?kind= and ?q= filters
//   - POST   /clients/:id/transactions : record a transaction
//   - PUT    /transactions/:id         : partial update
//   - DELETE /transactions/:id         : delete a transaction
func TransactionRoutes(app *fiber.App, store *ledger.Store, logger *slog.Logger) {
	app.Get("/clients/:id/transactions", ListTransactions(store))
	app.Post("/clients/:id/transactions", CreateTransaction(store, logger))
	app.Put("/transactions/:id", UpdateTransaction(store, logger))
	app.Delete("/transactions/:id", DeleteTransaction(store, logger))
}

// ListTransactions returns a handler listing one client's transactions in
// chronological order, each carrying its running balance. A removed client
// yields an empty list, not an error. Optional filters: ?kind=credit|debit
// and a free-text ?q= over description, category and reference.
func ListTransactions(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		kind := domain.Kind(c.Query("kind"))
		if kind != "" && !kind.Valid() {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid kind",
				"kind must be credit or debit")
		}
		transactions := store.ListTransactions(id)
		transactions = ledger.FilterByKind(transactions, kind)
		transactions = ledger.Search(transactions, c.Query("q"))
		return SuccessResponseJSON(c, fiber.StatusOK, "transactions", transactions)
	}
}

// CreateTransaction returns a handler recording a transaction for the
// client in the path. The response carries the final running balance; any
// runningBalance in the request body is ignored.
func CreateTransaction(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid client id", err.Error())
		}
		input, err := BindBody[domain.CreateTransactionInput](c)
		if input == nil {
			return err
		}
		input.ClientID = id
		tx, err := store.AddTransaction(*input)
		if err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("transaction added but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "transaction created", tx)
	}
}

// UpdateTransaction returns a handler applying a partial transaction edit.
// The owning client's partition is recalculated before the response is
// written, so the returned running balance is final.
func UpdateTransaction(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction id", err.Error())
		}
		input, err := BindBody[domain.UpdateTransactionInput](c)
		if input == nil {
			return err
		}
		tx, err := store.UpdateTransaction(id, *input)
		if err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("transaction updated but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "transaction updated", tx)
	}
}

// DeleteTransaction returns a handler deleting a transaction by id.
func DeleteTransaction(store *ledger.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction id", err.Error())
		}
		if err := store.DeleteTransaction(id); err != nil {
			if perr, ok := AsPersistenceWarning(err); ok {
				logger.Warn("transaction deleted but not persisted", "error", perr)
			} else {
				return DomainErrorJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "transaction deleted", nil)
	}
}
