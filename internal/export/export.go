// Package export serializes a filtered transaction view into a downloadable
// artifact. It is purely presentational: it consumes the ordered view the
// filter engine produced and never re-sorts, re-filters, or fetches.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stxscan/internal/txhistory"
)

// Format selects the output encoding. XLSX is rendered as tab-separated text
// that spreadsheet applications open directly.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats Render does not know.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options controls which optional column groups are included.
type Options struct {
	Format         Format `json:"format"`
	IncludeBalance bool   `json:"includeBalance"`
	IncludeEvents  bool   `json:"includeEvents"`
}

// Artifact is a rendered export ready to be written to disk or a response.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// now is replaceable in tests to pin the filename date and export timestamp.
var now = time.Now

// baseFilename derives the artifact name from the address and current date.
func baseFilename(address string) string {
	short := address
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("stacks-transactions-%s-%s", short, now().UTC().Format("2006-01-02"))
}

// stx renders a microSTX decimal string as STX with six decimal places.
func stx(microSTX string) string {
	return strconv.FormatFloat(txhistory.MicroSTXToSTX(microSTX), 'f', 6, 64)
}

// Render serializes the view. The transactions are emitted in the order given.
func Render(txs []txhistory.AccountTransaction, address string, opts Options) (Artifact, error) {
	name := baseFilename(address)

	switch opts.Format {
	case FormatCSV:
		data, err := renderCSV(txs, opts)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: name + ".csv", ContentType: "text/csv", Data: data}, nil
	case FormatJSON:
		data, err := renderJSON(txs, opts)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Filename: name + ".json", ContentType: "application/json", Data: data}, nil
	case FormatXLSX:
		return Artifact{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        renderTSV(txs, opts),
		}, nil
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// renderCSV emits base columns plus optional balance/event groups, and a
// kind-specific column group for each kind actually present in the view.
func renderCSV(txs []txhistory.AccountTransaction, opts Options) ([]byte, error) {
	var hasTransfers, hasCalls, hasDeployments bool
	for _, tx := range txs {
		switch tx.Tx.Type {
		case txhistory.TxTypeTokenTransfer:
			hasTransfers = true
		case txhistory.TxTypeContractCall:
			hasCalls = true
		case txhistory.TxTypeSmartContract:
			hasDeployments = true
		}
	}

	headers := []string{"Transaction ID", "Type", "Status", "Block Height", "Block Time", "Sender Address", "Nonce"}
	if opts.IncludeBalance {
		headers = append(headers, "STX Sent", "STX Received")
	}
	if opts.IncludeEvents {
		headers = append(headers, "Transfer Events", "Mint Events", "Burn Events")
	}
	if hasTransfers {
		headers = append(headers, "Recipient Address", "Transfer Amount (STX)")
	}
	if hasCalls {
		headers = append(headers, "Contract ID", "Function Name")
	}
	if hasDeployments {
		headers = append(headers, "Contract ID", "Clarity Version")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, tx := range txs {
		row := []string{
			tx.Tx.TxID,
			string(tx.Tx.Type),
			tx.Tx.Status,
			strconv.FormatInt(tx.Tx.BlockHeight, 10),
			time.Unix(tx.Tx.BlockTime, 0).UTC().Format(time.RFC3339),
			tx.Tx.SenderAddress,
			strconv.FormatUint(tx.Tx.Nonce, 10),
		}
		if opts.IncludeBalance {
			row = append(row, stx(tx.StxSent), stx(tx.StxReceived))
		}
		if opts.IncludeEvents {
			row = append(row,
				strconv.Itoa(tx.Events.Transfer),
				strconv.Itoa(tx.Events.Mint),
				strconv.Itoa(tx.Events.Burn),
			)
		}
		if hasTransfers {
			if tx.Tx.Type == txhistory.TxTypeTokenTransfer {
				row = append(row, tx.Tx.TokenTransfer.RecipientAddress, stx(tx.Tx.TokenTransfer.AmountMicroSTX))
			} else {
				row = append(row, "", "")
			}
		}
		if hasCalls {
			if tx.Tx.Type == txhistory.TxTypeContractCall {
				row = append(row, tx.Tx.ContractCall.ContractID, tx.Tx.ContractCall.FunctionName)
			} else {
				row = append(row, "", "")
			}
		}
		if hasDeployments {
			if tx.Tx.Type == txhistory.TxTypeSmartContract {
				row = append(row, tx.Tx.SmartContract.ContractID, strconv.Itoa(tx.Tx.SmartContract.ClarityVersion))
			} else {
				row = append(row, "", "")
			}
		}

		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

type (
	jsonTokenTransfer struct {
		RecipientAddress string `json:"recipient_address"`
		AmountSTX        string `json:"amount_stx"`
		AmountMicroSTX   string `json:"amount_ustx"`
	}

	jsonContractCall struct {
		ContractID   string `json:"contract_id"`
		FunctionName string `json:"function_name"`
	}

	jsonSmartContract struct {
		ContractID     string `json:"contract_id"`
		ClarityVersion int    `json:"clarity_version"`
	}

	jsonEvents struct {
		Transfer int `json:"transfer"`
		Mint     int `json:"mint"`
		Burn     int `json:"burn"`
	}

	jsonTransaction struct {
		TxID            string             `json:"tx_id"`
		TxType          string             `json:"tx_type"`
		TxStatus        string             `json:"tx_status"`
		BlockHeight     int64              `json:"block_height"`
		BlockTime       int64              `json:"block_time"`
		BlockTimeISO    string             `json:"block_time_iso"`
		SenderAddress   string             `json:"sender_address"`
		Nonce           uint64             `json:"nonce"`
		BlockHash       string             `json:"block_hash"`
		ParentBlockHash string             `json:"parent_block_hash"`
		StxSent         string             `json:"stx_sent,omitempty"`
		StxReceived     string             `json:"stx_received,omitempty"`
		Events          *jsonEvents        `json:"events,omitempty"`
		TokenTransfer   *jsonTokenTransfer `json:"token_transfer,omitempty"`
		ContractCall    *jsonContractCall  `json:"contract_call,omitempty"`
		SmartContract   *jsonSmartContract `json:"smart_contract,omitempty"`
	}

	jsonEnvelope struct {
		ExportDate        string            `json:"exportDate"`
		TotalTransactions int               `json:"totalTransactions"`
		Options           Options           `json:"options"`
		Transactions      []jsonTransaction `json:"transactions"`
	}
)

func renderJSON(txs []txhistory.AccountTransaction, opts Options) ([]byte, error) {
	envelope := jsonEnvelope{
		ExportDate:        now().UTC().Format(time.RFC3339),
		TotalTransactions: len(txs),
		Options:           opts,
		Transactions:      make([]jsonTransaction, 0, len(txs)),
	}

	for _, tx := range txs {
		row := jsonTransaction{
			TxID:            tx.Tx.TxID,
			TxType:          string(tx.Tx.Type),
			TxStatus:        tx.Tx.Status,
			BlockHeight:     tx.Tx.BlockHeight,
			BlockTime:       tx.Tx.BlockTime,
			BlockTimeISO:    time.Unix(tx.Tx.BlockTime, 0).UTC().Format(time.RFC3339),
			SenderAddress:   tx.Tx.SenderAddress,
			Nonce:           tx.Tx.Nonce,
			BlockHash:       tx.Tx.BlockHash,
			ParentBlockHash: tx.Tx.ParentBlockHash,
		}
		if opts.IncludeBalance {
			row.StxSent = stx(tx.StxSent)
			row.StxReceived = stx(tx.StxReceived)
		}
		if opts.IncludeEvents {
			row.Events = &jsonEvents{
				Transfer: tx.Events.Transfer,
				Mint:     tx.Events.Mint,
				Burn:     tx.Events.Burn,
			}
		}
		switch tx.Tx.Type {
		case txhistory.TxTypeTokenTransfer:
			row.TokenTransfer = &jsonTokenTransfer{
				RecipientAddress: tx.Tx.TokenTransfer.RecipientAddress,
				AmountSTX:        stx(tx.Tx.TokenTransfer.AmountMicroSTX),
				AmountMicroSTX:   tx.Tx.TokenTransfer.AmountMicroSTX,
			}
		case txhistory.TxTypeContractCall:
			row.ContractCall = &jsonContractCall{
				ContractID:   tx.Tx.ContractCall.ContractID,
				FunctionName: tx.Tx.ContractCall.FunctionName,
			}
		case txhistory.TxTypeSmartContract:
			row.SmartContract = &jsonSmartContract{
				ContractID:     tx.Tx.SmartContract.ContractID,
				ClarityVersion: tx.Tx.SmartContract.ClarityVersion,
			}
		}

		envelope.Transactions = append(envelope.Transactions, row)
	}

	return json.MarshalIndent(envelope, "", "  ")
}

// renderTSV emits a fixed column set with tab separators, which spreadsheet
// applications import without a dialog.
func renderTSV(txs []txhistory.AccountTransaction, opts Options) []byte {
	headers := []string{"Transaction ID", "Type", "Status", "Block Height", "Block Time", "Sender Address", "Nonce"}
	if opts.IncludeBalance {
		headers = append(headers, "STX Sent", "STX Received")
	}
	headers = append(headers, "Recipient Address", "Transfer Amount (STX)", "Contract ID", "Function Name")

	lines := []string{strings.Join(headers, "\t")}
	for _, tx := range txs {
		row := []string{
			tx.Tx.TxID,
			string(tx.Tx.Type),
			tx.Tx.Status,
			strconv.FormatInt(tx.Tx.BlockHeight, 10),
			time.Unix(tx.Tx.BlockTime, 0).UTC().Format(time.RFC3339),
			tx.Tx.SenderAddress,
			strconv.FormatUint(tx.Tx.Nonce, 10),
		}
		if opts.IncludeBalance {
			row = append(row, stx(tx.StxSent), stx(tx.StxReceived))
		}

		var recipient, amount string
		if tx.Tx.Type == txhistory.TxTypeTokenTransfer {
			recipient = tx.Tx.TokenTransfer.RecipientAddress
			amount = stx(tx.Tx.TokenTransfer.AmountMicroSTX)
		}

		var contractID, functionName string
		switch tx.Tx.Type {
		case txhistory.TxTypeContractCall:
			contractID = tx.Tx.ContractCall.ContractID
			functionName = tx.Tx.ContractCall.FunctionName
		case txhistory.TxTypeSmartContract:
			contractID = tx.Tx.SmartContract.ContractID
		}

		row = append(row, recipient, amount, contractID, functionName)
		lines = append(lines, strings.Join(row, "\t"))
	}

	return []byte(strings.Join(lines, "\n"))
}
