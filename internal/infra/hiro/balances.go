package hiro

import (
	"context"
	"fmt"
	"net/url"

	"stxscan/internal/stacks"
	"stxscan/internal/txhistory"
)

type (
	// STXBalanceResponse is the stx section of the address balances body.
	STXBalanceResponse struct {
		Balance       string `json:"balance"`
		TotalSent     string `json:"total_sent"`
		TotalReceived string `json:"total_received"`
		Locked        string `json:"locked"`
	}

	// BalancesResponse is the address balances body. Fungible and
	// non-fungible token sections are ignored.
	BalancesResponse struct {
		STX STXBalanceResponse `json:"stx"`
	}
)

// AccountBalance fetches the account's STX balance. The address is validated
// against the network before any request is made.
func (c *Client) AccountBalance(ctx context.Context, sctx stacks.Context, address string) (txhistory.Balance, error) {
	if err := sctx.Network.ValidateAddress(address); err != nil {
		return txhistory.Balance{}, err
	}

	endpoint := fmt.Sprintf("%s/extended/v1/address/%s/balances", sctx.APIBaseURL, url.PathEscape(address))

	var body BalancesResponse
	if err := c.do(ctx, "GET", endpoint, nil, &body); err != nil {
		return txhistory.Balance{}, err
	}

	return txhistory.Balance{
		Balance:       body.STX.Balance,
		TotalSent:     body.STX.TotalSent,
		TotalReceived: body.STX.TotalReceived,
		Locked:        body.STX.Locked,
	}, nil
}
