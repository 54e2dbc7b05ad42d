package stacks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidContractID is returned when a contract identifier cannot be split
// into a deployer address and a contract name.
var ErrInvalidContractID = errors.New("invalid contract identifier")

// ContractID identifies a deployed contract by its deployer address and name,
// the two halves of the canonical "ADDRESS.name" form.
type ContractID struct {
	Address string
	Name    string
}

// ParseContractID splits an "ADDRESS.name" identifier. Both halves must be
// non-empty.
func ParseContractID(id string) (ContractID, error) {
	address, name, found := strings.Cut(id, ".")
	if !found || address == "" || name == "" {
		return ContractID{}, fmt.Errorf("%w: %q", ErrInvalidContractID, id)
	}

	return ContractID{Address: address, Name: name}, nil
}

// String returns the canonical "ADDRESS.name" form.
func (c ContractID) String() string {
	return c.Address + "." + c.Name
}
