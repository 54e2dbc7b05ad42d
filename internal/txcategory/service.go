package txcategory

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"stxscan/internal/pkg/logger"
	"stxscan/internal/pkg/types"
	"stxscan/internal/pkg/validator"
	"stxscan/internal/stacks"
)

// ErrContractNotConfigured is returned by Write when no category contract is
// configured for the target network. Unlike reads, which degrade to "no
// category", a write without a target is a caller bug and must surface.
var ErrContractNotConfigured = errors.New("category contract not configured for network")

// ErrNoWallet is returned by Write when the service was built without a
// wallet, which makes every write impossible.
var ErrNoWallet = errors.New("no wallet configured")

// ErrSuperseded is returned by ReadLive when the invocation token was
// invalidated while the read was in flight; the result has been discarded.
var ErrSuperseded = errors.New("read superseded by a newer invocation")

// Service reads and writes the on-chain category mapping.
type Service struct {
	reader ContractReader
	wallet Wallet // may be nil; writes then fail with ErrNoWallet
}

// New creates a category service. wallet may be nil for read-only use.
func New(reader ContractReader, wallet Wallet) *Service {
	return &Service{
		reader: reader,
		wallet: wallet,
	}
}

// ResolveContract returns the category contract for the context's network.
// The second return is false when the feature is not configured there, in
// which case reads report no category and writes fail.
func ResolveContract(sctx stacks.Context) (stacks.ContractID, bool) {
	if sctx.Contract == nil {
		return stacks.ContractID{}, false
	}
	return *sctx.Contract, true
}

// readInput is validated before any network call is issued.
type readInput struct {
	Owner string `validate:"required"`
	TxID  string `validate:"required,len=64,hexadecimal"`
}

// Read fetches the category label the owner attached to the transaction.
// It returns found=false, never an error, when the contract is unresolved,
// the call fails, the record is absent, or the decoded shape is not
// recognized. Malformed input is the one hard failure, rejected before any
// network call.
func (s *Service) Read(ctx context.Context, sctx stacks.Context, owner string, txID string) (string, bool, error) {
	normalized, err := types.TxIDFromString(txID)
	if err != nil {
		return "", false, err
	}
	if err := validator.Validate(readInput{Owner: owner, TxID: normalized.String()}); err != nil {
		return "", false, err
	}
	if err := sctx.Network.ValidateAddress(owner); err != nil {
		return "", false, err
	}

	contract, ok := ResolveContract(sctx)
	if !ok {
		return "", false, nil
	}

	result, err := s.reader.CallReadOnly(ctx, sctx, ReadOnlyCall{
		Contract: contract,
		Function: getCategoryFunction,
		Sender:   owner,
		Args: []ClarityArg{
			{Type: ArgPrincipal, Value: owner},
			{Type: ArgBuffer, Value: normalized.String()},
		},
	})
	if err != nil {
		logger.Warn(ctx, "category read failed",
			"owner", owner,
			"txid", normalized.String(),
			"error", err,
		)
		return "", false, nil
	}

	label, found := normalizeCategory(result)
	return label, found, nil
}

// writeInput is validated before the wallet flow is opened.
type writeInput struct {
	Category string `validate:"required,max=64"`
	TxID     string `validate:"required,len=64,hexadecimal"`
}

// Write asks the wallet to sign and broadcast a set-category call. The
// transaction sender becomes the category's owner key; the contract enforces
// that, not the client. The returned WriteResult distinguishes submitted,
// cancelled, and failed outcomes; an error is returned only for precondition
// failures (bad input, no contract, no wallet) or wallet transport problems.
//
// There is no automatic retry: a cancelled or failed write changes nothing,
// and a later read reflects whatever the chain still holds.
func (s *Service) Write(ctx context.Context, sctx stacks.Context, txID string, category string) (WriteResult, error) {
	normalized, err := types.TxIDFromString(txID)
	if err != nil {
		return WriteResult{}, err
	}
	if err := validator.Validate(writeInput{Category: category, TxID: normalized.String()}); err != nil {
		return WriteResult{}, err
	}

	contract, ok := ResolveContract(sctx)
	if !ok {
		return WriteResult{}, fmt.Errorf("%w: %s", ErrContractNotConfigured, sctx.Network)
	}
	if s.wallet == nil {
		return WriteResult{}, ErrNoWallet
	}

	result, err := s.wallet.SignAndBroadcast(ctx, sctx, ContractCall{
		Contract: contract,
		Function: setCategoryFunction,
		Args: []ClarityArg{
			{Type: ArgBuffer, Value: normalized.String()},
			{Type: ArgStringUTF8, Value: category},
		},
	})
	if err != nil {
		return WriteResult{}, err
	}

	logger.Info(ctx, "category write finished",
		"txid", normalized.String(),
		"status", result.Status,
	)
	return result, nil
}

// Liveness tracks which read invocation is still current. Opening a new view
// begins a new invocation; results belonging to older invocations are
// discarded rather than applied. The in-flight network call itself is not
// aborted, matching the collaborating UI's behavior.
type Liveness struct {
	current atomic.Uint64
}

// Token identifies one invocation.
type Token struct {
	liveness *Liveness
	n        uint64
}

// Begin starts a new invocation, invalidating all previous tokens.
func (l *Liveness) Begin() Token {
	return Token{liveness: l, n: l.current.Add(1)}
}

// Live reports whether the token still identifies the current invocation.
func (t Token) Live() bool {
	return t.liveness.current.Load() == t.n
}

// ReadLive behaves like Read, but discards the result with ErrSuperseded when
// the token was invalidated while the read was in flight.
func (s *Service) ReadLive(ctx context.Context, sctx stacks.Context, token Token, owner string, txID string) (string, bool, error) {
	label, found, err := s.Read(ctx, sctx, owner, txID)
	if !token.Live() {
		return "", false, ErrSuperseded
	}
	return label, found, err
}
