package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransactionInput() domain.CreateTransactionInput {
	return domain.CreateTransactionInput{
		ClientID:    uuid.New(),
		Date:        "2024-01-15",
		Kind:        domain.KindCredit,
		Amount:      decimal.NewFromInt(5000),
		Description: "Paiement facture #FAC-001",
		Category:    "facture",
		Reference:   "FAC-001",
	}
}

func TestValidateTransaction_Valid(t *testing.T) {
	t.Parallel()
	input := validTransactionInput()
	tx, err := domain.ValidateTransaction(input)
	require.NoError(t, err)
	assert.Equal(t, input.ClientID, tx.ClientID)
	assert.Equal(t, domain.MustParseDate("2024-01-15"), tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, tx.RunningBalance.IsZero(), "running balance is derived, never set from input")
}

func TestValidateTransaction_AmountBoundary(t *testing.T) {
	t.Parallel()
	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-1),
	} {
		input := validTransactionInput()
		input.Amount = amount
		_, err := domain.ValidateTransaction(input)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "amount %s must be rejected", amount)
		assert.Equal(t, "amount", verr.Field)
	}

	input := validTransactionInput()
	input.Amount = decimal.RequireFromString("0.01")
	tx, err := domain.ValidateTransaction(input)
	require.NoError(t, err, "one cent is a valid amount")
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("0.01")))
}

func TestValidateTransaction_RejectsInvalidFields(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*domain.CreateTransactionInput)
		field  string
	}{
		{"unknown kind", func(in *domain.CreateTransactionInput) { in.Kind = "transfer" }, "kind"},
		{"missing kind", func(in *domain.CreateTransactionInput) { in.Kind = "" }, "kind"},
		{"description too short", func(in *domain.CreateTransactionInput) { in.Description = "ab" }, "description"},
		{"missing description", func(in *domain.CreateTransactionInput) { in.Description = "" }, "description"},
		{"missing date", func(in *domain.CreateTransactionInput) { in.Date = "" }, "date"},
		{"unparseable date", func(in *domain.CreateTransactionInput) { in.Date = "15/01/2024" }, "date"},
		{"impossible date", func(in *domain.CreateTransactionInput) { in.Date = "2024-13-40" }, "date"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			input := validTransactionInput()
			tc.mutate(&input)
			_, err := domain.ValidateTransaction(input)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestKindSigned(t *testing.T) {
	t.Parallel()
	amount := decimal.NewFromInt(100)
	assert.True(t, domain.KindCredit.Signed(amount).Equal(decimal.NewFromInt(100)))
	assert.True(t, domain.KindDebit.Signed(amount).Equal(decimal.NewFromInt(-100)))
	assert.True(t, domain.KindCredit.Valid())
	assert.True(t, domain.KindDebit.Valid())
	assert.False(t, domain.Kind("entree").Valid())
}
