// Package accountwatch follows an account's transaction stream by polling the
// head of its history and emitting entries that have not been observed during
// the current session. Nothing is persisted: closing the stream forgets
// everything it has seen.
package accountwatch

import (
	"context"
	"time"

	"stxscan/internal/pkg/resilience/retry"
	"stxscan/internal/pkg/types"
	"stxscan/internal/pkg/x/chflow"
	"stxscan/internal/stacks"
	"stxscan/internal/txhistory"
)

// defaultPollInterval approximates the Stacks block cadence.
const defaultPollInterval = 30 * time.Second

// defaultHeadLimit is how many head transactions each poll inspects.
const defaultHeadLimit = 20

// TransactionSource provides the head page of an account's history.
type TransactionSource interface {
	// AccountTransactions fetches one page; accountwatch always asks for
	// offset 0, the newest entries.
	AccountTransactions(ctx context.Context, sctx stacks.Context, address string, offset, limit int) (txhistory.Page, error)
}

// TransactionEvent is one emission from a follow stream: either a newly
// observed transaction or a poll failure. Poll failures are informational;
// the stream keeps polling.
type TransactionEvent struct {
	Tx  txhistory.AccountTransaction
	Err error
}

// Service follows accounts.
type Service struct {
	source       TransactionSource
	pollInterval time.Duration
	headLimit    int
	retry        retry.Retry
}

// Option configures the service.
type Option func(*Service)

// WithPollInterval overrides the polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		s.pollInterval = d
	}
}

// WithHeadLimit overrides how many head transactions each poll inspects.
func WithHeadLimit(n int) Option {
	return func(s *Service) {
		s.headLimit = n
	}
}

// WithRetry makes each poll retry transient fetch failures before an error
// event is emitted.
func WithRetry(r retry.Retry) Option {
	return func(s *Service) {
		s.retry = r
	}
}

// New creates a follow service over the given source.
func New(source TransactionSource, opts ...Option) *Service {
	s := &Service{
		source:       source,
		pollInterval: defaultPollInterval,
		headLimit:    defaultHeadLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fetchHead retrieves the head page, applying the configured retry policy.
func (s *Service) fetchHead(ctx context.Context, sctx stacks.Context, address string) (txhistory.Page, error) {
	if s.retry == nil {
		return s.source.AccountTransactions(ctx, sctx, address, 0, s.headLimit)
	}

	var page txhistory.Page
	err := s.retry.Execute(ctx, func() error {
		var fetchErr error
		page, fetchErr = s.source.AccountTransactions(ctx, sctx, address, 0, s.headLimit)
		return fetchErr
	})
	return page, err
}

// emitNew sends every not-yet-seen transaction of the page, oldest first so
// consumers observe them in chain order within a poll.
func (s *Service) emitNew(ctx context.Context, page txhistory.Page, seen types.Set[string], eventsCh chan<- TransactionEvent) bool {
	for i := len(page.Results) - 1; i >= 0; i-- {
		tx := page.Results[i]
		if seen.Has(tx.Tx.TxID) {
			continue
		}
		seen.Add(tx.Tx.TxID)

		if ok := chflow.Send(ctx, eventsCh, TransactionEvent{Tx: tx}); !ok {
			return false
		}
	}
	return true
}

// Follow starts following the address and returns the event stream. The
// initial head page seeds the seen-set without emitting, so only activity
// after the call shows up. The channel is closed when ctx is canceled.
//
// An error is returned only when the initial seeding fetch fails; later poll
// failures surface as events with Err set.
func (s *Service) Follow(ctx context.Context, sctx stacks.Context, address string) (<-chan TransactionEvent, error) {
	seedPage, err := s.fetchHead(ctx, sctx, address)
	if err != nil {
		return nil, err
	}

	seen := types.NewSet[string]()
	for _, tx := range seedPage.Results {
		seen.Add(tx.Tx.TxID)
	}

	eventsCh := make(chan TransactionEvent, s.headLimit)
	go func() {
		defer close(eventsCh)

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			page, err := s.fetchHead(ctx, sctx, address)
			if err != nil {
				if ok := chflow.Send(ctx, eventsCh, TransactionEvent{Err: err}); !ok {
					return
				}
				continue
			}

			if ok := s.emitNew(ctx, page, seen, eventsCh); !ok {
				return
			}
		}
	}()

	return eventsCh, nil
}
