// Package txhistory holds the account transaction model and the page
// accumulation store used to browse an account's history incrementally.
package txhistory

import "strconv"

// TxType enumerates the transaction kinds the upstream ledger API reports.
type TxType string

const (
	TxTypeTokenTransfer    TxType = "token_transfer"
	TxTypeContractCall     TxType = "contract_call"
	TxTypeSmartContract    TxType = "smart_contract"
	TxTypeCoinbase         TxType = "coinbase"
	TxTypePoisonMicroblock TxType = "poison_microblock"
)

// Transaction statuses. The upstream reports several abort variants; the only
// value this module treats specially is StatusSuccess, everything else counts
// as failed for filtering purposes.
const (
	StatusSuccess = "success"
	StatusPending = "pending"
)

// microSTXPerSTX is the number of microSTX units in one STX.
const microSTXPerSTX = 1_000_000

type (
	// TokenTransfer is the payload of a token_transfer transaction.
	// Amount is kept as the upstream decimal string in microSTX.
	TokenTransfer struct {
		AmountMicroSTX   string
		RecipientAddress string
	}

	// ContractCallInfo is the payload of a contract_call transaction.
	ContractCallInfo struct {
		ContractID   string
		FunctionName string
	}

	// SmartContractInfo is the payload of a smart_contract deployment.
	SmartContractInfo struct {
		ContractID     string
		ClarityVersion int
	}

	// Transaction is one immutable ledger entry, decoded from a single API
	// response item. Kind-specific payloads are zero-valued for other kinds.
	Transaction struct {
		TxID            string
		Type            TxType
		Status          string
		BlockHeight     int64
		BlockTime       int64 // unix seconds
		Nonce           uint64
		SenderAddress   string
		BlockHash       string
		ParentBlockHash string

		TokenTransfer TokenTransfer
		ContractCall  ContractCallInfo
		SmartContract SmartContractInfo
	}

	// STXEventCounts summarizes the STX asset events a transaction produced.
	STXEventCounts struct {
		Transfer int
		Mint     int
		Burn     int
	}

	// AccountTransaction is the upstream list item: the transaction itself
	// plus the queried account's balance deltas and event summary.
	AccountTransaction struct {
		Tx          Transaction
		StxSent     string // microSTX decimal string
		StxReceived string // microSTX decimal string
		Events      STXEventCounts
	}
)

// IsSuccess reports whether the transaction completed successfully.
func (t Transaction) IsSuccess() bool {
	return t.Status == StatusSuccess
}

// AmountSTX returns the transfer amount converted from microSTX to STX.
// Non-transfer transactions and unparseable amounts yield 0.
func (t Transaction) AmountSTX() float64 {
	if t.Type != TxTypeTokenTransfer {
		return 0
	}

	amount, err := strconv.ParseFloat(t.TokenTransfer.AmountMicroSTX, 64)
	if err != nil {
		return 0
	}
	return amount / microSTXPerSTX
}

// MicroSTXToSTX converts an upstream microSTX decimal string to STX.
// Unparseable input yields 0.
func MicroSTXToSTX(amount string) float64 {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v / microSTXPerSTX
}
