package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
)

// Read-only derived views over already-balanced sequences. These helpers
// never mutate their input and never re-sort: the store maintains
// chronological order and valid running balances.

// FilterByKind keeps only transactions of the given kind. An empty kind is
// the identity filter.
func FilterByKind(transactions []*domain.Transaction, kind domain.Kind) []*domain.Transaction {
	if kind == "" {
		return transactions
	}
	out := make([]*domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

// Search keeps transactions whose description, category or reference
// contains the term, case-insensitively. Absent optional fields never
// match. An empty term is the identity filter.
func Search(transactions []*domain.Transaction, term string) []*domain.Transaction {
	if term == "" {
		return transactions
	}
	needle := strings.ToLower(term)
	matches := func(field string) bool {
		return field != "" && strings.Contains(strings.ToLower(field), needle)
	}
	out := make([]*domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if matches(tx.Description) || matches(tx.Category) || matches(tx.Reference) {
			out = append(out, tx)
		}
	}
	return out
}

// Balance is the running balance of the chronologically last transaction,
// or zero for an empty sequence.
func Balance(transactions []*domain.Transaction) decimal.Decimal {
	if len(transactions) == 0 {
		return decimal.Zero
	}
	return transactions[len(transactions)-1].RunningBalance
}

// Totals are summary statistics over a client's chronological sequence.
type Totals struct {
	CreditSum decimal.Decimal `json:"creditSum"`
	DebitSum  decimal.Decimal `json:"debitSum"`
	Count     int             `json:"count"`
	LastDate  *domain.Date    `json:"lastDate,omitempty"`
}

// Summarize reduces an unfiltered chronological sequence to its totals.
func Summarize(transactions []*domain.Transaction) Totals {
	t := Totals{
		CreditSum: decimal.Zero,
		DebitSum:  decimal.Zero,
		Count:     len(transactions),
	}
	for _, tx := range transactions {
		if tx.Kind == domain.KindCredit {
			t.CreditSum = t.CreditSum.Add(tx.Amount)
		} else {
			t.DebitSum = t.DebitSum.Add(tx.Amount)
		}
	}
	if n := len(transactions); n > 0 {
		last := transactions[n-1].Date
		t.LastDate = &last
	}
	return t
}

// SearchClients keeps clients whose company name, contact name or sector
// contains the term, case-insensitively. An empty term is the identity
// filter.
func SearchClients(clients []*domain.Client, term string) []*domain.Client {
	if term == "" {
		return clients
	}
	needle := strings.ToLower(term)
	contains := func(field string) bool {
		return strings.Contains(strings.ToLower(field), needle)
	}
	out := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if contains(c.CompanyName) || contains(c.ContactName) || contains(c.Sector) {
			out = append(out, c)
		}
	}
	return out
}

// SectorCounts tallies clients per sector.
func SectorCounts(clients []*domain.Client) map[string]int {
	counts := make(map[string]int, len(clients))
	for _, c := range clients {
		counts[c.Sector]++
	}
	return counts
}
