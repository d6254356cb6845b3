// Package domain defines the client and transaction entities of the ledger
// and the validation rules that guard every mutation. Validation is pure:
// inputs are either normalized into an entity or rejected with a
// ValidationError naming the offending field.
package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Client is a business customer owning a partition of the ledger.
// The descriptive attributes are validated but irrelevant to balance math.
type Client struct {
	ID           uuid.UUID `json:"id"`
	CompanyName  string    `json:"companyName"`
	Sector       string    `json:"sector"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postalCode"`
	Country      string    `json:"country"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	TaxID        string    `json:"taxId"`
}

// CreateClientInput is the caller-supplied shape for creating a client.
// The id is assigned by the store, never by the caller.
type CreateClientInput struct {
	CompanyName  string `json:"companyName" validate:"required,min=2"`
	Sector       string `json:"sector" validate:"required"`
	Address      string `json:"address" validate:"required,min=5"`
	City         string `json:"city" validate:"required,min=2"`
	PostalCode   string `json:"postalCode" validate:"required,postal_fr"`
	Country      string `json:"country" validate:"required"`
	ContactName  string `json:"contactName" validate:"required,min=2"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone" validate:"required,phone_fr"`
	TaxID        string `json:"taxId" validate:"required,taxid"`
}

// UpdateClientInput carries a partial client edit; nil fields are left as-is.
type UpdateClientInput struct {
	CompanyName  *string `json:"companyName,omitempty"`
	Sector       *string `json:"sector,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	PostalCode   *string `json:"postalCode,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	TaxID        *string `json:"taxId,omitempty"`
}

var (
	phonePattern  = regexp.MustCompile(`^0[1-9]\d{8}$`)
	postalPattern = regexp.MustCompile(`^\d{5}$`)
	taxIDPattern  = regexp.MustCompile(`^\d{14}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their json names so errors match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("phone_fr", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("postal_fr", func(fl validator.FieldLevel) bool {
		return postalPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("taxid", func(fl validator.FieldLevel) bool {
		return ValidTaxID(fl.Field().String())
	}))
	return v
}

// ValidTaxID checks the 14-digit business identifier: every second digit
// (0-indexed odd positions) is doubled, digits of products above 9 are
// summed, and the grand total must be divisible by 10.
func ValidTaxID(id string) bool {
	if !taxIDPattern.MatchString(id) {
		return false
	}
	sum := 0
	for i, r := range id {
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit = digit/10 + digit%10
			}
		}
		sum += digit
	}
	return sum%10 == 0
}

// ValidateClient checks a client input and returns the normalized entity
// (id unset) or a ValidationError for the first failing field.
func ValidateClient(input CreateClientInput) (*Client, error) {
	normalizeClientInput(&input)
	if err := validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}
	return &Client{
		CompanyName:  input.CompanyName,
		Sector:       input.Sector,
		Address:      input.Address,
		City:         input.City,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		TaxID:        input.TaxID,
	}, nil
}

func normalizeClientInput(input *CreateClientInput) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Sector = strings.TrimSpace(input.Sector)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.PostalCode = strings.TrimSpace(input.PostalCode)
	input.Country = strings.TrimSpace(input.Country)
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.ContactEmail = strings.ToLower(strings.TrimSpace(input.ContactEmail))
	input.ContactPhone = strings.TrimSpace(input.ContactPhone)
	input.TaxID = strings.TrimSpace(input.TaxID)
}

// asValidationError converts the first validator failure into the domain
// error type. Non-validator errors pass through unchanged.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	reason := "failed rule " + fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "is too short, minimum length " + fe.Param()
	case "email":
		reason = "is not a valid email address"
	case "phone_fr":
		reason = "must be 10 digits starting with 0"
	case "postal_fr":
		reason = "must be a 5-digit postal code"
	case "taxid":
		reason = "must be a 14-digit identifier with a valid checksum"
	case "oneof":
		reason = "must be one of: " + fe.Param()
	}
	return NewValidationError(fe.Field(), reason)
}
