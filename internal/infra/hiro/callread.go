package hiro

import (
	"context"
	"fmt"
	"net/url"

	"stxscan/internal/stacks"
	"stxscan/internal/txcategory"
)

// Ensure the client satisfies the category service port at compile time.
var _ txcategory.ContractReader = (*Client)(nil)

type (
	// callReadRequest is the body of a read-only contract call. Arguments are
	// hex-serialized Clarity values.
	callReadRequest struct {
		Sender    string   `json:"sender"`
		Arguments []string `json:"arguments"`
	}

	// callReadResponse is the read-only contract call body. Result is the
	// hex-serialized Clarity return value when Okay is true; Cause explains
	// the failure otherwise.
	callReadResponse struct {
		Okay   bool   `json:"okay"`
		Result string `json:"result"`
		Cause  string `json:"cause"`
	}
)

// CallReadOnly implements txcategory.ContractReader. The returned tree is the
// canonical typed-JSON decoding of the function's Clarity return value.
func (c *Client) CallReadOnly(ctx context.Context, sctx stacks.Context, call txcategory.ReadOnlyCall) (map[string]any, error) {
	arguments := make([]string, len(call.Args))
	for i, arg := range call.Args {
		encoded, err := encodeClarityArg(arg.Type, arg.Value)
		if err != nil {
			return nil, err
		}
		arguments[i] = encoded
	}

	endpoint := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s",
		sctx.APIBaseURL,
		url.PathEscape(call.Contract.Address),
		url.PathEscape(call.Contract.Name),
		url.PathEscape(call.Function),
	)

	var body callReadResponse
	err := c.do(ctx, "POST", endpoint, callReadRequest{
		Sender:    call.Sender,
		Arguments: arguments,
	}, &body)
	if err != nil {
		return nil, err
	}

	if !body.Okay {
		return nil, fmt.Errorf("hiro: read-only call %s.%s/%s rejected: %s",
			call.Contract.Address, call.Contract.Name, call.Function, body.Cause)
	}

	return decodeClarityHex(body.Result)
}
