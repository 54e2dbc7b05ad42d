package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/itchyny/gojq"

	"stxscan/internal/txhistory"
)

// transactionRow is the JSON view of one transaction emitted by the list,
// show, and follow commands. Kind-specific fields are omitted when empty.
type transactionRow struct {
	TxID        string `json:"tx_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	BlockHeight int64  `json:"block_height"`
	Timestamp   string `json:"timestamp"`
	Sender      string `json:"sender"`

	AmountSTX string `json:"amount_stx,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Contract  string `json:"contract,omitempty"`
	Function  string `json:"function,omitempty"`

	StxSent     string `json:"stx_sent,omitempty"`
	StxReceived string `json:"stx_received,omitempty"`
}

// toRow flattens a transaction for display. Timestamps are rendered in UTC.
func toRow(tx txhistory.AccountTransaction) transactionRow {
	row := transactionRow{
		TxID:        tx.Tx.TxID,
		Type:        string(tx.Tx.Type),
		Status:      tx.Tx.Status,
		BlockHeight: tx.Tx.BlockHeight,
		Timestamp:   time.Unix(tx.Tx.BlockTime, 0).UTC().Format(time.RFC3339),
		Sender:      tx.Tx.SenderAddress,
		StxSent:     tx.StxSent,
		StxReceived: tx.StxReceived,
	}

	switch tx.Tx.Type {
	case txhistory.TxTypeTokenTransfer:
		row.AmountSTX = strconv.FormatFloat(tx.Tx.AmountSTX(), 'f', 6, 64)
		row.Recipient = tx.Tx.TokenTransfer.RecipientAddress
	case txhistory.TxTypeContractCall:
		row.Contract = tx.Tx.ContractCall.ContractID
		row.Function = tx.Tx.ContractCall.FunctionName
	case txhistory.TxTypeSmartContract:
		row.Contract = tx.Tx.SmartContract.ContractID
	}

	return row
}

// toRows flattens a view in order.
func toRows(txs []txhistory.AccountTransaction) []transactionRow {
	rows := make([]transactionRow, len(txs))
	for i, tx := range txs {
		rows[i] = toRow(tx)
	}
	return rows
}

// printDocument writes the document as indented JSON. A non-empty jq
// expression is applied first and every produced value is printed on its own
// line, mirroring the jq tool's stream output.
func printDocument(w io.Writer, doc any, jqExpr string) error {
	if jqExpr == "" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	query, err := gojq.Parse(jqExpr)
	if err != nil {
		return fmt.Errorf("parsing jq expression %q: %w", jqExpr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("compiling jq expression %q: %w", jqExpr, err)
	}

	// gojq operates on the generic JSON object model, so the document is
	// round-tripped before evaluation.
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	iter := code.Run(generic)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("evaluating jq expression: %w", err)
		}

		line, err := gojq.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(line))
	}

	return nil
}
