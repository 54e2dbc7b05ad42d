package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// txIDByteLen is the length in bytes of a Stacks transaction id.
const txIDByteLen = 32

// TxID represents a 32-byte transaction id as a lowercase hex string,
// normalized without a "0x" prefix. The zero value is invalid; construct
// values through TxIDFromString.
type TxID string

// TxIDFromString validates and normalizes the input string and returns a
// TxID. A leading "0x"/"0X" prefix is accepted and stripped; the remainder
// must be exactly 64 hexadecimal characters.
func TxIDFromString(s string) (TxID, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	clean = strings.ToLower(clean)

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("invalid transaction id %q: %w", s, err)
	}
	if len(raw) != txIDByteLen {
		return "", fmt.Errorf("invalid transaction id %q: expected %d bytes, got %d", s, txIDByteLen, len(raw))
	}

	return TxID(clean), nil
}

// Bytes returns the decoded 32 raw bytes of the transaction id.
// It must only be called on values produced by TxIDFromString.
func (t TxID) Bytes() []byte {
	raw, _ := hex.DecodeString(string(t))
	return raw
}

// WithPrefix returns the id in the "0x"-prefixed form used by the upstream API.
func (t TxID) WithPrefix() string {
	return "0x" + string(t)
}

// String returns the bare lowercase hex form.
func (t TxID) String() string {
	return string(t)
}
