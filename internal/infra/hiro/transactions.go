package hiro

import (
	"context"
	"fmt"
	"net/url"

	"stxscan/internal/accountwatch"
	"stxscan/internal/pkg/types"
	"stxscan/internal/stacks"
	"stxscan/internal/txhistory"
)

// Ensure the client satisfies the consuming service ports at compile time.
var (
	_ txhistory.PageFetcher          = (*Client)(nil)
	_ accountwatch.TransactionSource = (*Client)(nil)
)

type (
	// TokenTransferResponse is the token_transfer payload of a transaction.
	TokenTransferResponse struct {
		RecipientAddress string `json:"recipient_address"`
		Amount           string `json:"amount"`
		Memo             string `json:"memo"`
	}

	// ContractCallResponse is the contract_call payload of a transaction.
	ContractCallResponse struct {
		ContractID   string `json:"contract_id"`
		FunctionName string `json:"function_name"`
	}

	// SmartContractResponse is the smart_contract payload of a deployment.
	SmartContractResponse struct {
		ContractID     string `json:"contract_id"`
		ClarityVersion int    `json:"clarity_version"`
	}

	// TransactionResponse represents a transaction object as returned by the
	// Hiro extended API. Only the fields this module consumes are declared.
	TransactionResponse struct {
		TxID            string `json:"tx_id"`
		TxType          string `json:"tx_type"`
		TxStatus        string `json:"tx_status"`
		BlockHeight     int64  `json:"block_height"`
		BlockTime       int64  `json:"block_time"`
		BurnBlockTime   int64  `json:"burn_block_time"`
		Nonce           uint64 `json:"nonce"`
		SenderAddress   string `json:"sender_address"`
		BlockHash       string `json:"block_hash"`
		ParentBlockHash string `json:"parent_block_hash"`

		TokenTransfer *TokenTransferResponse `json:"token_transfer"`
		ContractCall  *ContractCallResponse  `json:"contract_call"`
		SmartContract *SmartContractResponse `json:"smart_contract"`
	}

	// STXEventsResponse counts the STX asset events of a list item.
	STXEventsResponse struct {
		Transfer int `json:"transfer"`
		Mint     int `json:"mint"`
		Burn     int `json:"burn"`
	}

	// AccountTransactionResponse is one item of the address transactions list:
	// the transaction wrapped with the queried account's balance deltas.
	AccountTransactionResponse struct {
		Tx          TransactionResponse `json:"tx"`
		StxSent     string              `json:"stx_sent"`
		StxReceived string              `json:"stx_received"`
		Events      struct {
			STX STXEventsResponse `json:"stx"`
		} `json:"events"`
	}

	// AccountTransactionsResponse is the paginated address transactions body.
	AccountTransactionsResponse struct {
		Limit   int                          `json:"limit"`
		Offset  int                          `json:"offset"`
		Total   int                          `json:"total"`
		Results []AccountTransactionResponse `json:"results"`
	}
)

// toTransaction converts the wire transaction to the domain model, filling
// conservative defaults for fields the upstream occasionally omits.
func (t TransactionResponse) toTransaction(fallbackSender string) txhistory.Transaction {
	tx := txhistory.Transaction{
		TxID:            t.TxID,
		Type:            txhistory.TxType(t.TxType),
		Status:          t.TxStatus,
		BlockHeight:     t.BlockHeight,
		BlockTime:       t.BlockTime,
		Nonce:           t.Nonce,
		SenderAddress:   t.SenderAddress,
		BlockHash:       t.BlockHash,
		ParentBlockHash: t.ParentBlockHash,
	}

	if tx.Type == "" {
		tx.Type = txhistory.TxTypeTokenTransfer
	}
	if tx.Status == "" {
		tx.Status = txhistory.StatusPending
	}
	if tx.BlockTime == 0 {
		tx.BlockTime = t.BurnBlockTime
	}
	if tx.SenderAddress == "" {
		tx.SenderAddress = fallbackSender
	}

	if t.TokenTransfer != nil {
		tx.TokenTransfer = txhistory.TokenTransfer{
			AmountMicroSTX:   t.TokenTransfer.Amount,
			RecipientAddress: t.TokenTransfer.RecipientAddress,
		}
	}
	if t.ContractCall != nil {
		tx.ContractCall = txhistory.ContractCallInfo{
			ContractID:   t.ContractCall.ContractID,
			FunctionName: t.ContractCall.FunctionName,
		}
	}
	if t.SmartContract != nil {
		tx.SmartContract = txhistory.SmartContractInfo{
			ContractID:     t.SmartContract.ContractID,
			ClarityVersion: t.SmartContract.ClarityVersion,
		}
	}

	return tx
}

// toAccountTransaction converts a wrapped list item to the domain model.
func (r AccountTransactionResponse) toAccountTransaction() txhistory.AccountTransaction {
	return txhistory.AccountTransaction{
		Tx:          r.Tx.toTransaction(""),
		StxSent:     r.StxSent,
		StxReceived: r.StxReceived,
		Events: txhistory.STXEventCounts{
			Transfer: r.Events.STX.Transfer,
			Mint:     r.Events.STX.Mint,
			Burn:     r.Events.STX.Burn,
		},
	}
}

// AccountTransactions implements txhistory.PageFetcher. The address is
// validated against the network before any request is made.
func (c *Client) AccountTransactions(ctx context.Context, sctx stacks.Context, address string, offset, limit int) (txhistory.Page, error) {
	if err := sctx.Network.ValidateAddress(address); err != nil {
		return txhistory.Page{}, err
	}

	endpoint := fmt.Sprintf("%s/extended/v1/address/%s/transactions?%s",
		sctx.APIBaseURL,
		url.PathEscape(address),
		url.Values{
			"limit":  []string{fmt.Sprint(limit)},
			"offset": []string{fmt.Sprint(offset)},
		}.Encode(),
	)

	var body AccountTransactionsResponse
	if err := c.do(ctx, "GET", endpoint, nil, &body); err != nil {
		return txhistory.Page{}, err
	}
	if body.Results == nil {
		return txhistory.Page{}, fmt.Errorf("hiro: malformed transactions page: missing results")
	}

	results := make([]txhistory.AccountTransaction, len(body.Results))
	for i, item := range body.Results {
		results[i] = item.toAccountTransaction()
	}

	return txhistory.Page{
		Results: results,
		Offset:  body.Offset,
		Limit:   body.Limit,
		Total:   body.Total,
	}, nil
}

// Transaction fetches a single transaction by ID. The account parameter is
// only used as the sender fallback when the upstream omits the field.
func (c *Client) Transaction(ctx context.Context, sctx stacks.Context, account string, txID types.TxID) (txhistory.Transaction, error) {
	endpoint := fmt.Sprintf("%s/extended/v1/tx/%s", sctx.APIBaseURL, url.PathEscape(txID.WithPrefix()))

	var body TransactionResponse
	if err := c.do(ctx, "GET", endpoint, nil, &body); err != nil {
		return txhistory.Transaction{}, err
	}
	if body.TxID == "" {
		body.TxID = txID.WithPrefix()
	}

	return body.toTransaction(account), nil
}
