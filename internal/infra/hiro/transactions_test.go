package hiro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transporthttp "stxscan/internal/pkg/transport/http"
	"stxscan/internal/pkg/types"
	"stxscan/internal/stacks"
	"stxscan/internal/txhistory"
)

const (
	mainnetAddress = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	testnetAddress = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
)

// newTestClient builds a client without retries pointed at the test server.
func newTestClient() *Client {
	return NewClient(WithHTTPClient(transporthttp.NewClient(transporthttp.WithRetryMax(0))))
}

// mainnetContext builds a mainnet context whose API base is the test server.
func mainnetContext(t *testing.T, baseURL string) stacks.Context {
	t.Helper()

	sctx, err := stacks.NewContext("mainnet", baseURL, "")
	require.NoError(t, err)
	return sctx
}

func TestAccountTransactions(t *testing.T) {
	t.Run("fetches and maps one page", func(t *testing.T) {
		var gotPath, gotQuery, gotRequestID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotRequestID = r.Header.Get("X-Request-Id")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"limit": 20,
				"offset": 0,
				"total": 45,
				"results": [
					{
						"tx": {
							"tx_id": "0xaa11",
							"tx_type": "token_transfer",
							"tx_status": "success",
							"block_height": 100,
							"block_time": 1700000000,
							"nonce": 7,
							"sender_address": "` + mainnetAddress + `",
							"block_hash": "0xb1",
							"parent_block_hash": "0xb0",
							"token_transfer": {
								"recipient_address": "` + testnetAddress + `",
								"amount": "2500000",
								"memo": "0x"
							}
						},
						"stx_sent": "2500000",
						"stx_received": "0",
						"events": {"stx": {"transfer": 1, "mint": 0, "burn": 0}}
					},
					{
						"tx": {
							"tx_id": "0xbb22",
							"tx_type": "contract_call",
							"tx_status": "abort_by_response",
							"block_height": 99,
							"block_time": 1699990000,
							"sender_address": "` + mainnetAddress + `",
							"contract_call": {
								"contract_id": "` + mainnetAddress + `.tx-categories",
								"function_name": "set-category"
							}
						},
						"stx_sent": "0",
						"stx_received": "0",
						"events": {"stx": {}}
					}
				]
			}`))
		}))
		defer server.Close()

		client := newTestClient()
		page, err := client.AccountTransactions(context.Background(), mainnetContext(t, server.URL), mainnetAddress, 0, 20)
		require.NoError(t, err)

		assert.Equal(t, "/extended/v1/address/"+mainnetAddress+"/transactions", gotPath)
		assert.Equal(t, "limit=20&offset=0", gotQuery)
		assert.NotEmpty(t, gotRequestID)

		assert.Equal(t, 45, page.Total)
		assert.Equal(t, 0, page.Offset)
		assert.Equal(t, 20, page.Limit)
		require.Len(t, page.Results, 2)

		first := page.Results[0]
		assert.Equal(t, "0xaa11", first.Tx.TxID)
		assert.Equal(t, txhistory.TxTypeTokenTransfer, first.Tx.Type)
		assert.True(t, first.Tx.IsSuccess())
		assert.Equal(t, int64(100), first.Tx.BlockHeight)
		assert.Equal(t, "2500000", first.Tx.TokenTransfer.AmountMicroSTX)
		assert.Equal(t, testnetAddress, first.Tx.TokenTransfer.RecipientAddress)
		assert.Equal(t, "2500000", first.StxSent)
		assert.Equal(t, 1, first.Events.Transfer)

		second := page.Results[1]
		assert.Equal(t, txhistory.TxTypeContractCall, second.Tx.Type)
		assert.False(t, second.Tx.IsSuccess())
		assert.Equal(t, "set-category", second.Tx.ContractCall.FunctionName)
	})

	t.Run("rejects an address from the wrong network before any request", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		client := newTestClient()
		_, err := client.AccountTransactions(context.Background(), mainnetContext(t, server.URL), testnetAddress, 0, 20)

		assert.ErrorIs(t, err, stacks.ErrInvalidAddress)
		assert.Zero(t, calls)
	})

	t.Run("fails on a body without results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error": "address required"}`))
		}))
		defer server.Close()

		client := newTestClient()
		_, err := client.AccountTransactions(context.Background(), mainnetContext(t, server.URL), mainnetAddress, 0, 20)

		assert.ErrorContains(t, err, "missing results")
	})

	t.Run("wraps upstream failures with the request id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient()
		_, err := client.AccountTransactions(context.Background(), mainnetContext(t, server.URL), mainnetAddress, 0, 20)

		var upstreamErr *UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
		assert.NotEmpty(t, upstreamErr.RequestID)
		assert.Contains(t, upstreamErr.Body, "too many requests")
	})
}

func TestTransaction(t *testing.T) {
	t.Run("fetches a single transaction by id", func(t *testing.T) {
		txID, err := types.TxIDFromString("0x" + strings.Repeat("ab", 32))
		require.NoError(t, err)

		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"tx_id": "0x` + string(txID) + `",
				"tx_type": "coinbase",
				"tx_status": "success",
				"block_height": 5,
				"block_time": 1700000500,
				"sender_address": "` + mainnetAddress + `"
			}`))
		}))
		defer server.Close()

		client := newTestClient()
		tx, err := client.Transaction(context.Background(), mainnetContext(t, server.URL), mainnetAddress, txID)
		require.NoError(t, err)

		assert.Equal(t, "/extended/v1/tx/"+txID.WithPrefix(), gotPath)
		assert.Equal(t, txhistory.TxTypeCoinbase, tx.Type)
		assert.Equal(t, int64(5), tx.BlockHeight)
	})

	t.Run("fills conservative defaults for omitted fields", func(t *testing.T) {
		txID, err := types.TxIDFromString(strings.Repeat("cd", 32))
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"burn_block_time": 1700000999}`))
		}))
		defer server.Close()

		client := newTestClient()
		tx, err := client.Transaction(context.Background(), mainnetContext(t, server.URL), mainnetAddress, txID)
		require.NoError(t, err)

		assert.Equal(t, txID.WithPrefix(), tx.TxID)
		assert.Equal(t, txhistory.TxTypeTokenTransfer, tx.Type)
		assert.Equal(t, txhistory.StatusPending, tx.Status)
		assert.Equal(t, int64(1700000999), tx.BlockTime)
		assert.Zero(t, tx.BlockHeight)
		assert.Zero(t, tx.Nonce)
		assert.Empty(t, tx.BlockHash)
		assert.Equal(t, mainnetAddress, tx.SenderAddress)
	})
}

func TestAccountBalance(t *testing.T) {
	t.Run("fetches the stx balance", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"stx": {
					"balance": "12345678",
					"total_sent": "1000000",
					"total_received": "13345678",
					"locked": "0"
				},
				"fungible_tokens": {},
				"non_fungible_tokens": {}
			}`))
		}))
		defer server.Close()

		client := newTestClient()
		balance, err := client.AccountBalance(context.Background(), mainnetContext(t, server.URL), mainnetAddress)
		require.NoError(t, err)

		assert.Equal(t, "/extended/v1/address/"+mainnetAddress+"/balances", gotPath)
		assert.Equal(t, "12345678", balance.Balance)
		assert.Equal(t, "1000000", balance.TotalSent)
		assert.Equal(t, "13345678", balance.TotalReceived)
		assert.Equal(t, "0", balance.Locked)
	})

	t.Run("rejects an address from the wrong network before any request", func(t *testing.T) {
		client := newTestClient()
		_, err := client.AccountBalance(context.Background(), mainnetContext(t, "http://127.0.0.1:0"), testnetAddress)

		assert.ErrorIs(t, err, stacks.ErrInvalidAddress)
	})
}
