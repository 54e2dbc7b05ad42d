package txhistory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"stxscan/internal/pkg/types"
	"stxscan/internal/stacks"
)

// DefaultPageLimit is the page size requested when none is configured.
const DefaultPageLimit = 20

// ErrLoadInProgress is returned by LoadMore when another LoadMore call on the
// same store has not finished yet. Page loads are serialized per store so a
// slow network can never append the same page twice.
var ErrLoadInProgress = errors.New("a page load is already in progress")

// Store accumulates the pages fetched so far for one account on one network.
// Results are kept in fetch-then-append order and never re-sorted here;
// ordering and filtering are the filter engine's job. The accumulated slice is
// the store's only mutable state and is owned exclusively by it: readers get
// snapshots.
type Store struct {
	fetcher PageFetcher
	sctx    stacks.Context
	address string
	limit   int

	mu       sync.Mutex
	inFlight bool
	loaded   bool
	results  []AccountTransaction
	offset   int
	pageSize int
	total    int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPageLimit sets the page size requested from the fetcher.
// Default: DefaultPageLimit.
func WithPageLimit(n int) StoreOption {
	return func(s *Store) {
		s.limit = n
	}
}

// NewStore creates an empty store for the given account. The first LoadMore
// fetches from offset 0.
func NewStore(fetcher PageFetcher, sctx stacks.Context, address string, opts ...StoreOption) *Store {
	s := &Store{
		fetcher: fetcher,
		sctx:    sctx,
		address: address,
		limit:   DefaultPageLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadMore fetches the next page and appends its results, returning the
// number of transactions appended. The next offset is always the current
// accumulated length, which keeps the offset math simple under the upstream's
// append-stable pagination contract.
//
// Once the freshest known total has been reached, LoadMore is a no-op
// returning (0, nil). A call made while another is still in flight fails with
// ErrLoadInProgress.
func (s *Store) LoadMore(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return 0, ErrLoadInProgress
	}
	if s.loaded && len(s.results) >= s.total {
		s.mu.Unlock()
		return 0, nil
	}

	s.inFlight = true
	nextOffset := len(s.results)
	s.mu.Unlock()

	page, err := s.fetcher.AccountTransactions(ctx, s.sctx, s.address, nextOffset, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		return 0, err
	}

	s.results = append(s.results, page.Results...)
	s.offset = page.Offset
	s.pageSize = page.Limit
	s.total = page.Total
	s.loaded = true

	return len(page.Results), nil
}

// LoadAll calls LoadMore until the upstream total is exhausted or a page
// comes back empty (a defense against a total that never converges).
func (s *Store) LoadAll(ctx context.Context) error {
	for {
		appended, err := s.LoadMore(ctx)
		if err != nil {
			return err
		}
		if appended == 0 {
			return nil
		}
	}
}

// Snapshot returns a copy of the accumulated transactions in fetch order,
// without de-duplication.
func (s *Store) Snapshot() []AccountTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// Len returns the number of accumulated transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Total returns the freshest total reported by the upstream, or 0 before the
// first successful load.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// HasMore reports whether the upstream claims more transactions than have
// been accumulated. Before the first load it returns true.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded || len(s.results) < s.total
}

// Dedupe returns the transactions with duplicate tx ids removed, keeping the
// first occurrence. The store itself accumulates pages verbatim so the offset
// math stays simple; de-duplication belongs to the render path, which is why
// this is a helper over a snapshot rather than a merge-time rule.
func Dedupe(txs []AccountTransaction) []AccountTransaction {
	seen := types.NewSet[string]()
	out := make([]AccountTransaction, 0, len(txs))
	for _, tx := range txs {
		if seen.Has(tx.Tx.TxID) {
			continue
		}
		seen.Add(tx.Tx.TxID)
		out = append(out, tx)
	}
	return out
}
