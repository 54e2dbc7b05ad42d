package hiro

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// c32Alphabet is the Crockford base32 alphabet Stacks addresses use.
const c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// hash160Size is the byte length of the public key hash inside an address.
const hash160Size = 20

// c32ChecksumSize is the byte length of the trailing c32check checksum.
const c32ChecksumSize = 4

var errInvalidC32Address = errors.New("hiro: invalid c32check address")

// c32Checksum computes the c32check checksum over a version byte and payload.
func c32Checksum(version byte, payload []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, payload...))
	second := sha256.Sum256(first[:])
	return second[:c32ChecksumSize]
}

// decodeC32Address decodes a Stacks address into its version byte and
// 20-byte public key hash, verifying the embedded checksum.
func decodeC32Address(address string) (byte, []byte, error) {
	if len(address) < 3 || address[0] != 'S' {
		return 0, nil, errInvalidC32Address
	}

	version := strings.IndexByte(c32Alphabet, address[1])
	if version < 0 {
		return 0, nil, fmt.Errorf("%w: unknown version character %q", errInvalidC32Address, address[1])
	}

	value := new(big.Int)
	for _, ch := range []byte(address[2:]) {
		digit := strings.IndexByte(c32Alphabet, ch)
		if digit < 0 {
			return 0, nil, fmt.Errorf("%w: character %q outside alphabet", errInvalidC32Address, ch)
		}
		value.Lsh(value, 5)
		value.Or(value, big.NewInt(int64(digit)))
	}

	// The payload is always hash160 plus checksum; leading zero bytes are
	// restored by sizing the buffer exactly.
	if value.BitLen() > 8*(hash160Size+c32ChecksumSize) {
		return 0, nil, fmt.Errorf("%w: payload overflow", errInvalidC32Address)
	}
	payload := make([]byte, hash160Size+c32ChecksumSize)
	value.FillBytes(payload)

	hash := payload[:hash160Size]
	checksum := payload[hash160Size:]
	if want := c32Checksum(byte(version), hash); !bytes.Equal(checksum, want) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", errInvalidC32Address)
	}

	return byte(version), hash, nil
}
