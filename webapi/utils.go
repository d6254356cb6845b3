package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soldeapp/clientledger/pkg/domain"
)

// Response is the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes a success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON writes an RFC 9457 problem response.
func ErrorResponseJSON(c *fiber.Ctx, status int, title, detail string) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	return c.Status(status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainErrorJSON writes the problem response for a store error.
func DomainErrorJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	title := "Request failed"
	switch status {
	case fiber.StatusBadRequest:
		title = "Validation failed"
	case fiber.StatusNotFound:
		title = "Not found"
	}
	return ErrorResponseJSON(c, status, title, err.Error())
}

// BindBody parses the JSON request body into T, writing a problem response
// on malformed input. Derived fields such as runningBalance are not part of
// any input type, so a caller supplying them has no effect.
func BindBody[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	return &input, nil
}

// AsPersistenceWarning unwraps a PersistenceError. A mutation that returns
// one has been applied in memory but not made durable; handlers report it
// as a success and leave the retry decision to the operator.
func AsPersistenceWarning(err error) (*domain.PersistenceError, bool) {
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
