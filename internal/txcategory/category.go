// Package txcategory bridges to the on-chain transaction category mapping.
// Categories are free-text labels an account owner attaches to their own
// transactions; the chain stores them keyed by (owner, transaction id) and is
// always the source of truth, so reads re-query it every time.
package txcategory

import (
	"context"

	"stxscan/internal/stacks"
)

// Contract function names of the category mapping.
const (
	getCategoryFunction = "get-category"
	setCategoryFunction = "set-category"
)

// SuggestedCategories are the labels offered to the user. The contract does
// not enforce them; any non-empty label is accepted.
var SuggestedCategories = []string{"Income", "Expense", "Transfer", "Investment", "Other"}

// Clarity argument kinds understood by the contract caller and wallet ports.
const (
	ArgPrincipal  = "principal"
	ArgBuffer     = "buffer"
	ArgStringUTF8 = "string-utf8"
)

// ClarityArg is one function argument in a contract invocation. Value holds
// the principal address, the buffer's hex encoding, or the UTF-8 text,
// depending on Type.
type ClarityArg struct {
	Type  string
	Value string
}

// ReadOnlyCall describes a read-only contract function invocation made on
// behalf of Sender.
type ReadOnlyCall struct {
	Contract stacks.ContractID
	Function string
	Sender   string
	Args     []ClarityArg
}

// ContractReader performs read-only contract calls and returns the decoded
// result as the generic typed-JSON tree produced by the node's contract-call
// decoding layer. The exact shape of that tree varies across decoder
// versions; this package normalizes it (see decode.go), so implementations
// only decode, never interpret.
type ContractReader interface {
	CallReadOnly(ctx context.Context, sctx stacks.Context, call ReadOnlyCall) (map[string]any, error)
}

// ContractCall describes a state-changing contract invocation to be signed
// and broadcast by the owner's wallet. The contract derives the category's
// owner key from the transaction sender, so no owner argument is carried.
type ContractCall struct {
	Contract stacks.ContractID
	Function string
	Args     []ClarityArg
}

// Wallet mediates signing and broadcasting of contract calls. It blocks until
// the user approves or declines; both outcomes are values, not errors.
// Errors are reserved for transport failures talking to the wallet itself.
type Wallet interface {
	SignAndBroadcast(ctx context.Context, sctx stacks.Context, call ContractCall) (WriteResult, error)
}

// WriteStatus is the terminal state of one write attempt.
type WriteStatus string

const (
	// WriteSubmitted means the wallet signed and broadcast the call.
	WriteSubmitted WriteStatus = "submitted"
	// WriteCancelled means the user declined the signing prompt.
	WriteCancelled WriteStatus = "cancelled"
	// WriteFailed means the broadcast was attempted but did not go through.
	WriteFailed WriteStatus = "failed"
)

// WriteResult reports how a write attempt ended. TxID is set only for
// WriteSubmitted; Reason only for WriteFailed.
type WriteResult struct {
	Status WriteStatus
	TxID   string
	Reason string
}
