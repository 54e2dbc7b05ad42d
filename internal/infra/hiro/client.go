// Package hiro implements the Stacks-facing ports of the history, category,
// and follow services against the Hiro Platform API. It covers the extended
// transaction endpoints and read-only Clarity contract calls.
package hiro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	transporthttp "stxscan/internal/pkg/transport/http"
)

// maxErrorBodyBytes caps how much of an upstream error body is kept for the
// error message.
const maxErrorBodyBytes = 512

// UpstreamError reports a non-success response from the Hiro API. The request
// ID echoes the X-Request-Id header sent with the failing call.
type UpstreamError struct {
	StatusCode int
	RequestID  string
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hiro: upstream returned status %d (request %s): %s", e.StatusCode, e.RequestID, e.Body)
}

// Client is an HTTP client for the Hiro API. The base URL is taken per call
// from the network context, so one client serves both mainnet and testnet.
type Client struct {
	httpClient *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *retryablehttp.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Hiro API client with the default retrying transport.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: transporthttp.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes the request and decodes a success body into out. Responses
// outside the 2xx range become an *UpstreamError.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("hiro: encoding request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("hiro: building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hiro: executing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		return &UpstreamError{
			StatusCode: res.StatusCode,
			RequestID:  requestID,
			Body:       string(bytes.TrimSpace(raw)),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("hiro: decoding response body: %w", err)
	}
	return nil
}
