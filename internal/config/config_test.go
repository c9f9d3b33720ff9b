package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JUPITER_BASE_URL", "")
	t.Setenv("SOLANA_RPC_URL", "")
	t.Setenv("QUOTED_ADDR", "")
	t.Setenv("DEV_MODE", "")
	t.Setenv("PRICE_CACHE_TTL", "")

	cfg := Load()
	assert.Equal(t, "https://lite-api.jup.ag", cfg.JupiterBaseURL)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCUrl)
	assert.Equal(t, ":8090", cfg.QuotedAddr)
	assert.Equal(t, 12*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.PriceCacheTTL)
	assert.False(t, cfg.DevMode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JUPITER_BASE_URL", "https://api.jup.ag")
	t.Setenv("JUPITER_API_KEY", "k")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PRICE_CACHE_TTL", "bogus")

	cfg := Load()
	assert.Equal(t, "https://api.jup.ag", cfg.JupiterBaseURL)
	assert.Equal(t, "k", cfg.JupiterAPIKey)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.DevMode)
	// Unparseable durations fall back to the default.
	assert.Equal(t, 10*time.Second, cfg.PriceCacheTTL)
}

func TestRequireWallet(t *testing.T) {
	t.Setenv("WALLET_PRIVATE_KEY", "")
	t.Setenv("SOLANA_RPC_URL", "")

	cfg := Load()
	assert.EqualError(t, cfg.RequireWallet(), "WALLET_PRIVATE_KEY is required")

	cfg.WalletPrivateKey = "key"
	cfg.RPCUrl = ""
	assert.EqualError(t, cfg.RequireWallet(), "SOLANA_RPC_URL is required")

	cfg.RPCUrl = "https://api.mainnet-beta.solana.com"
	require.NoError(t, cfg.RequireWallet())
}
