package hiro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClarityHex(t *testing.T) {
	t.Run("decodes the optional tuple returned by a category lookup", func(t *testing.T) {
		// (some (tuple (category u"Income")))
		node, err := decodeClarityHex("0x0a0c000000010863617465676f72790e00000006496e636f6d65")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"type": "some",
			"value": map[string]any{
				"type": "tuple",
				"value": map[string]any{
					"category": map[string]any{"type": "string-utf8", "value": "Income"},
				},
			},
		}, node)
	})

	t.Run("decodes none", func(t *testing.T) {
		node, err := decodeClarityHex("0x09")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"type": "none", "value": nil}, node)
	})

	t.Run("decodes integers as decimal strings", func(t *testing.T) {
		node, err := decodeClarityHex("0x010000000000000000000000000000002a")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "uint", "value": "42"}, node)

		node, err = decodeClarityHex("0x00ffffffffffffffffffffffffffffffff")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "int", "value": "-1"}, node)
	})

	t.Run("decodes buffers as hex", func(t *testing.T) {
		node, err := decodeClarityHex("0x0200000004deadbeef")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"type": "buffer", "value": "0xdeadbeef"}, node)
	})

	t.Run("decodes booleans", func(t *testing.T) {
		node, err := decodeClarityHex("0x03")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "bool", "value": true}, node)

		node, err = decodeClarityHex("0x04")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"type": "bool", "value": false}, node)
	})

	t.Run("decodes standard principals to c32 addresses", func(t *testing.T) {
		node, err := decodeClarityHex("0x0516a46ff88886c2ef9762d970b4d2c63678835bd39d")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"type":  "principal",
			"value": "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
		}, node)
	})

	t.Run("decodes responses and lists", func(t *testing.T) {
		node, err := decodeClarityHex("0x070100000000000000000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"type":  "responseOk",
			"value": map[string]any{"type": "uint", "value": "1"},
		}, node)

		node, err = decodeClarityHex("0x0b000000020304")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"type": "list",
			"value": []any{
				map[string]any{"type": "bool", "value": true},
				map[string]any{"type": "bool", "value": false},
			},
		}, node)
	})

	t.Run("decodes ascii strings", func(t *testing.T) {
		node, err := decodeClarityHex("0x0d000000026f6b")
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"type": "string-ascii", "value": "ok"}, node)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for name, encoded := range map[string]string{
			"empty":          "0x",
			"unknown prefix": "0x0f",
			"truncated uint": "0x010001",
			"trailing bytes": "0x0303",
			"not hex":        "0xzz",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := decodeClarityHex(encoded)
				assert.ErrorIs(t, err, errMalformedClarityValue)
			})
		}
	})
}

func TestEncodeClarityArg(t *testing.T) {
	t.Run("encodes principals", func(t *testing.T) {
		encoded, err := encodeClarityArg("principal", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
		require.NoError(t, err)

		assert.Equal(t, "0x0516a46ff88886c2ef9762d970b4d2c63678835bd39d", encoded)
	})

	t.Run("encodes buffers", func(t *testing.T) {
		txID := strings.Repeat("ab", 32)

		encoded, err := encodeClarityArg("buffer", txID)
		require.NoError(t, err)

		assert.Equal(t, "0x0200000020"+txID, encoded)
	})

	t.Run("encodes utf8 strings", func(t *testing.T) {
		encoded, err := encodeClarityArg("string-utf8", "Income")
		require.NoError(t, err)

		assert.Equal(t, "0x0e00000006496e636f6d65", encoded)
	})

	t.Run("rejects unsupported kinds", func(t *testing.T) {
		_, err := encodeClarityArg("uint", "1")
		assert.Error(t, err)
	})

	t.Run("rejects non-hex buffers", func(t *testing.T) {
		_, err := encodeClarityArg("buffer", "not hex")
		assert.Error(t, err)
	})

	t.Run("rejects invalid principals", func(t *testing.T) {
		_, err := encodeClarityArg("principal", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKK000000")
		assert.ErrorIs(t, err, errInvalidC32Address)
	})
}
