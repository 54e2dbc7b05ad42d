// Package walletagent implements the txcategory.Wallet port against a local
// wallet signing agent. The agent owns the keys and the approval prompt; this
// client only relays the contract call and reports how the attempt ended.
package walletagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	transporthttp "stxscan/internal/pkg/transport/http"
	"stxscan/internal/stacks"
	"stxscan/internal/txcategory"
)

// contractCallPath is the agent endpoint that signs and broadcasts a
// contract call after prompting the user.
const contractCallPath = "/v1/contract-call"

// Client talks to the wallet signing agent.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// Ensure the client satisfies the category service port at compile time.
var _ txcategory.Wallet = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Signing prompts block
// on the user, so the replacement should carry a generous timeout.
func WithHTTPClient(httpClient *retryablehttp.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a wallet agent client for the given base URL. The default
// transport never retries: a signing request is not idempotent.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: transporthttp.NewClient(transporthttp.WithTimeout(0), transporthttp.WithRetryMax(0)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type (
	// argumentRequest is one Clarity argument in the signing request.
	argumentRequest struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}

	// contractCallRequest is the signing request body.
	contractCallRequest struct {
		Network         string            `json:"network"`
		ContractAddress string            `json:"contract_address"`
		ContractName    string            `json:"contract_name"`
		FunctionName    string            `json:"function_name"`
		Arguments       []argumentRequest `json:"arguments"`
	}

	// contractCallResponse is the agent's report of how the attempt ended.
	contractCallResponse struct {
		Status string `json:"status"`
		TxID   string `json:"tx_id"`
		Reason string `json:"reason"`
	}
)

// SignAndBroadcast implements txcategory.Wallet. It blocks until the agent's
// user approves or declines the prompt; declines come back as a cancelled
// result, not an error.
func (c *Client) SignAndBroadcast(ctx context.Context, sctx stacks.Context, call txcategory.ContractCall) (txcategory.WriteResult, error) {
	arguments := make([]argumentRequest, len(call.Args))
	for i, arg := range call.Args {
		arguments[i] = argumentRequest{Type: arg.Type, Value: arg.Value}
	}

	payload, err := json.Marshal(contractCallRequest{
		Network:         string(sctx.Network),
		ContractAddress: call.Contract.Address,
		ContractName:    call.Contract.Name,
		FunctionName:    call.Function,
		Arguments:       arguments,
	})
	if err != nil {
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: encoding request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contractCallPath, bytes.NewReader(payload))
	if err != nil {
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: executing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: agent returned status %d: %s", res.StatusCode, bytes.TrimSpace(raw))
	}

	var body contractCallResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: decoding response: %w", err)
	}

	switch txcategory.WriteStatus(body.Status) {
	case txcategory.WriteSubmitted:
		return txcategory.WriteResult{Status: txcategory.WriteSubmitted, TxID: body.TxID}, nil
	case txcategory.WriteCancelled:
		return txcategory.WriteResult{Status: txcategory.WriteCancelled}, nil
	case txcategory.WriteFailed:
		return txcategory.WriteResult{Status: txcategory.WriteFailed, Reason: body.Reason}, nil
	default:
		return txcategory.WriteResult{}, fmt.Errorf("walletagent: unknown status %q", body.Status)
	}
}
