package hiro

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeC32Address(t *testing.T) {
	t.Run("decodes a mainnet single-sig address", func(t *testing.T) {
		version, hash, err := decodeC32Address("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
		require.NoError(t, err)

		assert.Equal(t, byte(22), version)
		assert.Equal(t, "a46ff88886c2ef9762d970b4d2c63678835bd39d", hex.EncodeToString(hash))
	})

	t.Run("decodes a testnet single-sig address", func(t *testing.T) {
		version, hash, err := decodeC32Address("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
		require.NoError(t, err)

		assert.Equal(t, byte(26), version)
		assert.Equal(t, "6d78de7b0625dfbfc16c3a8a5735f6dc3dc3f2ce", hex.EncodeToString(hash))
	})

	t.Run("rejects a corrupted checksum", func(t *testing.T) {
		_, _, err := decodeC32Address("SM2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKK5VKFM6P")
		assert.ErrorIs(t, err, errInvalidC32Address)
	})

	t.Run("rejects characters outside the alphabet", func(t *testing.T) {
		_, _, err := decodeC32Address("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EIL")
		assert.ErrorIs(t, err, errInvalidC32Address)
	})

	t.Run("rejects addresses without the S prefix", func(t *testing.T) {
		_, _, err := decodeC32Address("XP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
		assert.ErrorIs(t, err, errInvalidC32Address)
	})
}

func TestEncodeC32Address(t *testing.T) {
	t.Run("round trips decoded addresses", func(t *testing.T) {
		for _, address := range []string{
			"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
			"ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM",
		} {
			version, hash, err := decodeC32Address(address)
			require.NoError(t, err)

			assert.Equal(t, address, encodeC32Address(version, hash))
		}
	})
}
