// Package config loads environment configuration for the example programs
// and the quoted demo server. The jupiter library itself never reads the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Jupiter API
	JupiterBaseURL string
	JupiterAPIKey  string
	HTTPTimeout    time.Duration

	// Wallet / RPC (examples only)
	RPCUrl           string
	WalletPrivateKey string

	// quoted server
	QuotedAddr    string
	QuotedAPIKey  string
	RedisAddr     string
	DevMode       bool
	PriceCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		JupiterBaseURL: getEnv("JUPITER_BASE_URL", "https://lite-api.jup.ag"),
		JupiterAPIKey:  getEnv("JUPITER_API_KEY", ""),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 12*time.Second),

		RPCUrl:           getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		WalletPrivateKey: getEnv("WALLET_PRIVATE_KEY", ""),

		QuotedAddr:    getEnv("QUOTED_ADDR", ":8090"),
		QuotedAPIKey:  getEnv("QUOTED_API_KEY", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		DevMode:       getBoolEnv("DEV_MODE", false),
		PriceCacheTTL: getDurationEnv("PRICE_CACHE_TTL", 10*time.Second),
	}
}

// RequireWallet validates the fields the signing examples need.
func (c *Config) RequireWallet() error {
	if c.WalletPrivateKey == "" {
		return fmt.Errorf("WALLET_PRIVATE_KEY is required")
	}
	if c.RPCUrl == "" {
		return fmt.Errorf("SOLANA_RPC_URL is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
