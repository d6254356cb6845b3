package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields marshal as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Kind classifies a transaction as an inflow or an outflow.
type Kind string

const (
	// KindCredit is an inflow; it increases the running balance.
	KindCredit Kind = "credit"
	// KindDebit is an outflow; it decreases the running balance.
	KindDebit Kind = "debit"
)

// Valid reports whether k is one of the two allowed kinds.
func (k Kind) Valid() bool { return k == KindCredit || k == KindDebit }

// Signed applies the kind's sign to a stored (always positive) amount.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == KindDebit {
		return amount.Neg()
	}
	return amount
}

// Transaction is a single monetary entry in a client's ledger.
//
// RunningBalance is derived: it is stamped by the balance recalculation
// after every mutation and is never accepted from a caller.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	ClientID       uuid.UUID       `json:"clientId"`
	Date           Date            `json:"date"`
	Kind           Kind            `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Category       string          `json:"category,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// CreateTransactionInput is the caller-supplied shape for recording a
// transaction. The date travels as an ISO string so that an unparseable
// date surfaces as a ValidationError rather than a decoding failure.
type CreateTransactionInput struct {
	ClientID    uuid.UUID       `json:"clientId"`
	Date        string          `json:"date" validate:"required"`
	Kind        Kind            `json:"kind" validate:"required,oneof=credit debit"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,min=3"`
	Category    string          `json:"category"`
	Reference   string          `json:"reference"`
}

// UpdateTransactionInput carries a partial transaction edit; nil fields are
// left as-is. The owning client cannot be changed.
type UpdateTransactionInput struct {
	Date        *string          `json:"date,omitempty"`
	Kind        *Kind            `json:"kind,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Reference   *string          `json:"reference,omitempty"`
}

// ValidateTransaction checks a transaction input and returns the normalized
// entity (id and running balance unset) or a ValidationError for the first
// failing field. Whether the client exists is the store's concern, not
// validation's.
func ValidateTransaction(input CreateTransactionInput) (*Transaction, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.Reference = strings.TrimSpace(input.Reference)
	if err := validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}
	if !input.Amount.IsPositive() {
		return nil, NewValidationError("amount", "must be greater than zero")
	}
	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, NewValidationError("date", "must be a calendar date in format "+DateFormat)
	}
	return &Transaction{
		ClientID:    input.ClientID,
		Date:        date,
		Kind:        input.Kind,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Reference:   input.Reference,
	}, nil
}
