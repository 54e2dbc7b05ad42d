package stacks

// Context carries everything a network-facing call needs to target one chain:
// the network name, the ledger API base URL, and the category contract
// deployed on that chain, if any.
//
// A Context is built once per logical operation and passed explicitly, so the
// API base and the contract identifier can never disagree about which chain
// they belong to. A nil Contract means the category feature is not configured
// for the network.
type Context struct {
	Network    Network
	APIBaseURL string
	Contract   *ContractID
}

// NewContext builds a Context for the given network. An empty apiBaseURL
// selects the network's default endpoint. contractID, when non-empty, must be
// a valid "ADDRESS.name" identifier.
func NewContext(network Network, apiBaseURL, contractID string) (Context, error) {
	if apiBaseURL == "" {
		apiBaseURL = network.DefaultAPIBaseURL()
	}

	sctx := Context{
		Network:    network,
		APIBaseURL: apiBaseURL,
	}

	if contractID != "" {
		contract, err := ParseContractID(contractID)
		if err != nil {
			return Context{}, err
		}
		sctx.Contract = &contract
	}

	return sctx, nil
}
