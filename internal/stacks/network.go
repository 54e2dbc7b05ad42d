// Package stacks defines the Stacks network model shared across the module:
// network identifiers, account address syntax, contract identifiers, and the
// explicit per-call network context that keeps the API base URL and the
// category contract pointing at the same chain.
package stacks

import (
	"errors"
	"fmt"
	"strings"
)

// Network identifies a Stacks chain.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Default API base URLs for the Hiro-hosted endpoints.
const (
	mainnetAPIBaseURL = "https://api.hiro.so"
	testnetAPIBaseURL = "https://api.testnet.hiro.so"
)

// ErrUnknownNetwork is returned when a string does not name a known network.
var ErrUnknownNetwork = errors.New("unknown network")

// ErrInvalidAddress is returned when an account address fails syntactic
// validation for the target network.
var ErrInvalidAddress = errors.New("invalid account address")

// ParseNetwork converts a string into a Network.
func ParseNetwork(s string) (Network, error) {
	switch Network(strings.ToLower(s)) {
	case Mainnet:
		return Mainnet, nil
	case Testnet:
		return Testnet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
}

// DefaultAPIBaseURL returns the default ledger API base URL for the network.
func (n Network) DefaultAPIBaseURL() string {
	if n == Testnet {
		return testnetAPIBaseURL
	}
	return mainnetAPIBaseURL
}

// addressPrefixes maps each network to the version prefixes its account
// addresses may carry (single-sig and multi-sig variants).
var addressPrefixes = map[Network][]string{
	Mainnet: {"SP", "SM"},
	Testnet: {"ST", "SN"},
}

// c32Alphabet is the Crockford-style alphabet used by Stacks addresses.
// It excludes I, L, O, and U.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ValidateAddress checks that the address is syntactically plausible for the
// given network: correct version prefix, c32 alphabet, and a body length
// matching a 20-byte hash plus checksum. It performs no network calls and no
// checksum verification; callers that serialize the address verify the
// checksum at that point.
func (n Network) ValidateAddress(address string) error {
	var prefixOK bool
	for _, prefix := range addressPrefixes[n] {
		if strings.HasPrefix(address, prefix) {
			prefixOK = true
			break
		}
	}
	if !prefixOK {
		return fmt.Errorf("%w: %q is not a %s address", ErrInvalidAddress, address, n)
	}

	// Version char + c32(20-byte hash || 4-byte checksum) is 38-39 characters
	// after the leading "S".
	body := address[2:]
	if len(body) < 36 || len(body) > 40 {
		return fmt.Errorf("%w: %q has unexpected length", ErrInvalidAddress, address)
	}

	for _, r := range body {
		if !strings.ContainsRune(c32Alphabet, r) {
			return fmt.Errorf("%w: %q contains invalid character %q", ErrInvalidAddress, address, r)
		}
	}

	return nil
}
