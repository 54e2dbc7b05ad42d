// Package txfilter implements the pure filtering and sorting engine applied
// to an accumulated transaction set. Apply is deterministic and free of side
// effects, so callers may recompute the view on every input change.
package txfilter

import (
	"time"

	"stxscan/internal/txhistory"
)

// StatusFilter selects transactions by outcome. "failed" matches every
// non-success status, including aborts and pending.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusSuccess StatusFilter = "success"
	StatusFailed  StatusFilter = "failed"
)

// Sort keys and orders.
type (
	SortBy    string
	SortOrder string
)

const (
	SortByBlockHeight SortBy = "block_height"
	SortByBlockTime   SortBy = "block_time"
	SortByAmount      SortBy = "amount"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// KindAll disables filtering by transaction kind.
const KindAll = "all"

// Criteria is a pure filter/sort description, replaced wholesale on every
// change. Optional bounds are pointers; nil means unset.
type Criteria struct {
	Kind   string // a txhistory.TxType, or KindAll
	Status StatusFilter

	// Date bounds are civil dates interpreted in their own location:
	// DateFrom at start of day, DateTo at end of day (23:59:59.999…).
	DateFrom *time.Time
	DateTo   *time.Time

	// Amount bounds in STX. They only constrain token transfers; every
	// other kind passes the amount filter unconditionally.
	MinAmount *float64
	MaxAmount *float64

	SortBy    SortBy
	SortOrder SortOrder
}

// DefaultCriteria mirrors the initial view: everything included, newest first.
func DefaultCriteria() Criteria {
	return Criteria{
		Kind:      KindAll,
		Status:    StatusAll,
		SortBy:    SortByBlockTime,
		SortOrder: SortDesc,
	}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable millisecond of t's day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// matches reports whether a single transaction passes every criterion.
func (c Criteria) matches(tx txhistory.Transaction) bool {
	if c.Kind != "" && c.Kind != KindAll && string(tx.Type) != c.Kind {
		return false
	}

	switch c.Status {
	case StatusSuccess:
		if !tx.IsSuccess() {
			return false
		}
	case StatusFailed:
		if tx.IsSuccess() {
			return false
		}
	}

	txTime := time.Unix(tx.BlockTime, 0)
	if c.DateFrom != nil && txTime.Before(startOfDay(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && txTime.After(endOfDay(*c.DateTo)) {
		return false
	}

	if tx.Type == txhistory.TxTypeTokenTransfer && (c.MinAmount != nil || c.MaxAmount != nil) {
		amount := tx.AmountSTX()
		if c.MinAmount != nil && amount < *c.MinAmount {
			return false
		}
		if c.MaxAmount != nil && amount > *c.MaxAmount {
			return false
		}
	}

	return true
}
