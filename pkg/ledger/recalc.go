package ledger

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/soldeapp/clientledger/pkg/domain"
)

// Recalculate returns one client's transactions in chronological order with
// running balances restamped from zero.
//
// Ordering is date ascending with ties kept in their existing slice order.
// The store feeds partitions back in post-recalculation order and appends
// new entries at the end, so same-date transactions stay in insertion order
// across any number of recalculations. Entries are copied before stamping;
// the input and any transaction previously handed to a caller are never
// modified.
//
// A full partition recompute is deliberate: an edit can move any
// transaction's date, which can reorder the whole sequence.
func Recalculate(transactions []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(transactions))
	for i, tx := range transactions {
		c := *tx
		out[i] = &c
	}
	slices.SortStableFunc(out, func(a, b *domain.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	balance := decimal.Zero
	for _, tx := range out {
		balance = balance.Add(tx.Kind.Signed(tx.Amount))
		tx.RunningBalance = balance
	}
	return out
}
