package stacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	t.Run("known networks", func(t *testing.T) {
		for _, s := range []string{"mainnet", "Mainnet", "MAINNET"} {
			n, err := ParseNetwork(s)
			require.NoError(t, err)
			assert.Equal(t, Mainnet, n)
		}

		n, err := ParseNetwork("testnet")
		require.NoError(t, err)
		assert.Equal(t, Testnet, n)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := ParseNetwork("devnet")
		assert.ErrorIs(t, err, ErrUnknownNetwork)
	})
}

func TestValidateAddress(t *testing.T) {
	const (
		mainnetAddr = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
		testnetAddr = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	)

	t.Run("valid mainnet address", func(t *testing.T) {
		assert.NoError(t, Mainnet.ValidateAddress(mainnetAddr))
	})

	t.Run("valid testnet address", func(t *testing.T) {
		assert.NoError(t, Testnet.ValidateAddress(testnetAddr))
	})

	t.Run("wrong network prefix is rejected", func(t *testing.T) {
		assert.ErrorIs(t, Mainnet.ValidateAddress(testnetAddr), ErrInvalidAddress)
		assert.ErrorIs(t, Testnet.ValidateAddress(mainnetAddr), ErrInvalidAddress)
	})

	t.Run("invalid characters are rejected", func(t *testing.T) {
		err := Mainnet.ValidateAddress("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9ILO")
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("truncated address is rejected", func(t *testing.T) {
		err := Mainnet.ValidateAddress("SP2J6ZY48")
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})
}

func TestParseContractID(t *testing.T) {
	t.Run("valid identifier", func(t *testing.T) {
		c, err := ParseContractID("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.tx-categories")
		require.NoError(t, err)
		assert.Equal(t, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", c.Address)
		assert.Equal(t, "tx-categories", c.Name)
		assert.Equal(t, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.tx-categories", c.String())
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseContractID("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7")
		assert.ErrorIs(t, err, ErrInvalidContractID)

		_, err = ParseContractID("SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.")
		assert.ErrorIs(t, err, ErrInvalidContractID)
	})
}

func TestNewContext(t *testing.T) {
	t.Run("defaults API base by network", func(t *testing.T) {
		sctx, err := NewContext(Testnet, "", "")
		require.NoError(t, err)
		assert.Equal(t, "https://api.testnet.hiro.so", sctx.APIBaseURL)
		assert.Nil(t, sctx.Contract)
	})

	t.Run("custom base and contract", func(t *testing.T) {
		sctx, err := NewContext(Mainnet, "http://localhost:3999", "SP000000000000000000002Q6VF78.tx-categories")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3999", sctx.APIBaseURL)
		require.NotNil(t, sctx.Contract)
		assert.Equal(t, "tx-categories", sctx.Contract.Name)
	})

	t.Run("bad contract id", func(t *testing.T) {
		_, err := NewContext(Mainnet, "", "not-a-contract")
		assert.ErrorIs(t, err, ErrInvalidContractID)
	})
}
