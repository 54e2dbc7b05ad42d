package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "mainnet", cfg.Network)
		assert.Equal(t, 20, cfg.PageLimit)
		assert.Equal(t, 30, cfg.PollIntervalSeconds)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.TelemetryEnabled)
	})

	t.Run("reads prefixed variables", func(t *testing.T) {
		t.Setenv("STXSCAN_NETWORK", "testnet")
		t.Setenv("STXSCAN_CATEGORY_CONTRACT", "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.tx-categories")
		t.Setenv("STXSCAN_PAGE_LIMIT", "50")
		t.Setenv("STXSCAN_TELEMETRY_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "testnet", cfg.Network)
		assert.Equal(t, "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.tx-categories", cfg.CategoryContract)
		assert.Equal(t, 50, cfg.PageLimit)
		assert.True(t, cfg.TelemetryEnabled)
	})

	t.Run("rejects malformed numeric variables", func(t *testing.T) {
		t.Setenv("STXSCAN_PAGE_LIMIT", "lots")

		_, err := Load()
		assert.Error(t, err)
	})
}
