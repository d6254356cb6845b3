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

// queryFixture is an already-balanced chronological sequence, as the store
// would hand out.
func queryFixture() []*domain.Transaction {
	seq := []*domain.Transaction{
		{
			ID:             uuid.New(),
			Date:           domain.MustParseDate("2024-01-15"),
			Kind:           domain.KindCredit,
			Amount:         decimal.NewFromInt(5000),
			Description:    "Paiement facture #FAC-001",
			Category:       "facture",
			Reference:      "FAC-001",
			RunningBalance: decimal.NewFromInt(5000),
		},
		{
			ID:             uuid.New(),
			Date:           domain.MustParseDate("2024-01-20"),
			Kind:           domain.KindDebit,
			Amount:         decimal.NewFromInt(1500),
			Description:    "Remboursement avance",
			Category:       "remboursement",
			RunningBalance: decimal.NewFromInt(3500),
		},
		{
			ID:             uuid.New(),
			Date:           domain.MustParseDate("2024-01-25"),
			Kind:           domain.KindCredit,
			Amount:         decimal.NewFromInt(200),
			Description:    "Avoir divers",
			RunningBalance: decimal.NewFromInt(3700),
		},
	}
	return seq
}

func TestSearch_ByReference(t *testing.T) {
	t.Parallel()
	seq := queryFixture()

	// Scenario: the reference matches exactly one entry, case-insensitively;
	// entries without a reference are excluded, not errors.
	for _, term := range []string{"FAC-001", "fac-001"} {
		matched := ledger.Search(seq, term)
		require.Len(t, matched, 1, "term %q", term)
		assert.Equal(t, "FAC-001", matched[0].Reference)
	}
}

func TestSearch_Fields(t *testing.T) {
	t.Parallel()
	seq := queryFixture()

	assert.Len(t, ledger.Search(seq, "remboursement"), 1, "matches category and description")
	assert.Len(t, ledger.Search(seq, "avoir"), 1, "matches description case-insensitively")
	assert.Empty(t, ledger.Search(seq, "nonexistent"))
	assert.Len(t, ledger.Search(seq, ""), 3, "empty term is the identity filter")
}

func TestFilterByKind(t *testing.T) {
	t.Parallel()
	seq := queryFixture()

	credits := ledger.FilterByKind(seq, domain.KindCredit)
	require.Len(t, credits, 2)
	debits := ledger.FilterByKind(seq, domain.KindDebit)
	require.Len(t, debits, 1)
	assert.Len(t, ledger.FilterByKind(seq, ""), 3, "absent kind is the identity filter")
}

func TestBalance(t *testing.T) {
	t.Parallel()
	assert.True(t, ledger.Balance(queryFixture()).Equal(decimal.NewFromInt(3700)))
	assert.True(t, ledger.Balance(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	totals := ledger.Summarize(queryFixture())
	assert.True(t, totals.CreditSum.Equal(decimal.NewFromInt(5200)))
	assert.True(t, totals.DebitSum.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 3, totals.Count)
	require.NotNil(t, totals.LastDate)
	assert.Equal(t, "2024-01-25", totals.LastDate.String())
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()
	totals := ledger.Summarize(nil)
	assert.True(t, totals.CreditSum.IsZero())
	assert.True(t, totals.DebitSum.IsZero())
	assert.Zero(t, totals.Count)
	assert.Nil(t, totals.LastDate)
}

func TestSearchClients(t *testing.T) {
	t.Parallel()
	clients := []*domain.Client{
		{ID: uuid.New(), CompanyName: "Dupont SARL", ContactName: "Jean Dupont", Sector: "Automobile"},
		{ID: uuid.New(), CompanyName: "Martin Industries", ContactName: "Marie Martin", Sector: "Chimie"},
	}

	assert.Len(t, ledger.SearchClients(clients, "dupont"), 1)
	assert.Len(t, ledger.SearchClients(clients, "marie"), 1, "matches contact name")
	assert.Len(t, ledger.SearchClients(clients, "chimie"), 1, "matches sector")
	assert.Len(t, ledger.SearchClients(clients, ""), 2)
	assert.Empty(t, ledger.SearchClients(clients, "boulangerie"))
}

func TestSectorCounts(t *testing.T) {
	t.Parallel()
	clients := []*domain.Client{
		{Sector: "Automobile"},
		{Sector: "Automobile"},
		{Sector: "Chimie"},
	}
	counts := ledger.SectorCounts(clients)
	assert.Equal(t, map[string]int{"Automobile": 2, "Chimie": 1}, counts)
}
