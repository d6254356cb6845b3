package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/soldeapp/clientledger/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, kind domain.Kind, amount int64) *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.New(),
		ClientID:    uuid.Nil,
		Date:        domain.MustParseDate(date),
		Kind:        kind,
		Amount:      decimal.NewFromInt(amount),
		Description: "entry",
	}
}

func balances(transactions []*domain.Transaction) []string {
	out := make([]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.RunningBalance.String()
	}
	return out
}

func TestRecalculate_OrdersAndStamps(t *testing.T) {
	t.Parallel()
	input := []*domain.Transaction{
		tx("2024-01-20", domain.KindDebit, 1500),
		tx("2024-01-15", domain.KindCredit, 5000),
		tx("2024-01-10", domain.KindCredit, 1000),
	}
	out := ledger.Recalculate(input)
	require.Len(t, out, 3)
	assert.Equal(t, "2024-01-10", out[0].Date.String())
	assert.Equal(t, "2024-01-15", out[1].Date.String())
	assert.Equal(t, "2024-01-20", out[2].Date.String())
	assert.Equal(t, []string{"1000", "6000", "4500"}, balances(out))
}

func TestRecalculate_Idempotent(t *testing.T) {
	t.Parallel()
	input := []*domain.Transaction{
		tx("2024-01-20", domain.KindDebit, 1500),
		tx("2024-01-10", domain.KindCredit, 1000),
		tx("2024-01-10", domain.KindCredit, 250),
	}
	once := ledger.Recalculate(input)
	twice := ledger.Recalculate(once)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].ID, twice[i].ID, "order must not change on recalculation")
		assert.True(t, once[i].RunningBalance.Equal(twice[i].RunningBalance))
	}
}

func TestRecalculate_SortedInputKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	input := []*domain.Transaction{
		tx("2024-01-10", domain.KindCredit, 100),
		tx("2024-01-11", domain.KindCredit, 200),
		tx("2024-01-12", domain.KindCredit, 300),
	}
	out := ledger.Recalculate(input)
	for i := range input {
		assert.Equal(t, input[i].ID, out[i].ID)
	}
}

func TestRecalculate_SameDateTieBreak(t *testing.T) {
	t.Parallel()
	first := tx("2024-01-15", domain.KindCredit, 100)
	second := tx("2024-01-15", domain.KindCredit, 200)
	out := ledger.Recalculate([]*domain.Transaction{first, second})
	require.Len(t, out, 2)
	assert.Equal(t, first.ID, out[0].ID, "ties keep insertion order")
	assert.Equal(t, second.ID, out[1].ID)
	assert.Equal(t, []string{"100", "300"}, balances(out))
}

func TestRecalculate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	entry := tx("2024-01-15", domain.KindCredit, 100)
	ledger.Recalculate([]*domain.Transaction{entry})
	assert.True(t, entry.RunningBalance.IsZero(), "input entries are copied, not stamped in place")
}

func TestRecalculate_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ledger.Recalculate(nil))
}
