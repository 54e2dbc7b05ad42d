package txfilter

import (
	"cmp"
	"slices"

	"stxscan/internal/txhistory"
)

// sortKey returns the numeric comparison key for one transaction. The amount
// key is the STX-converted transfer amount, with every non-transfer kind
// keyed at 0 so they cluster at one sort extreme.
func sortKey(tx txhistory.Transaction, by SortBy) float64 {
	switch by {
	case SortByBlockTime:
		return float64(tx.BlockTime)
	case SortByAmount:
		return tx.AmountSTX()
	default:
		return float64(tx.BlockHeight)
	}
}

// Apply filters the input by the criteria and sorts the surviving
// transactions. The input slice is never mutated; the returned slice is a
// fresh ordering of the surviving elements.
//
// The sort is stable with respect to input order, so equal keys keep their
// fetch order and repeated exports of the same view are byte-identical.
func Apply(txs []txhistory.AccountTransaction, criteria Criteria) []txhistory.AccountTransaction {
	filtered := make([]txhistory.AccountTransaction, 0, len(txs))
	for _, tx := range txs {
		if criteria.matches(tx.Tx) {
			filtered = append(filtered, tx)
		}
	}

	slices.SortStableFunc(filtered, func(a, b txhistory.AccountTransaction) int {
		order := cmp.Compare(sortKey(a.Tx, criteria.SortBy), sortKey(b.Tx, criteria.SortBy))
		if criteria.SortOrder == SortDesc {
			order = -order
		}
		return order
	})

	return filtered
}
