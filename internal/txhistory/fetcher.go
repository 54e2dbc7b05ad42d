package txhistory

import (
	"context"

	"stxscan/internal/stacks"
)

// Page is one fetch result from the upstream ledger API. Total is the
// upstream's reported total count at fetch time; it goes stale as soon as a
// newer page is fetched. Invariant: len(Results) <= Limit.
type Page struct {
	Results []AccountTransaction
	Offset  int
	Limit   int
	Total   int
}

// PageFetcher retrieves one page of an account's transactions. The fetch is
// read-only and must not retry beyond whatever policy its transport applies;
// retrying is the caller's decision.
type PageFetcher interface {
	// AccountTransactions fetches the page at the given offset. The address
	// must be syntactically valid for sctx's network; implementations reject
	// invalid input before issuing any network call.
	AccountTransactions(ctx context.Context, sctx stacks.Context, address string, offset, limit int) (Page, error)
}
