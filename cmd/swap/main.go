// Command swap demonstrates the Swap API flow: quote, build a swap
// transaction, sign it locally, and submit it through your own RPC endpoint.
//
// Requires WALLET_PRIVATE_KEY and SOLANA_RPC_URL in the environment or a
// .env file.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/solport/jupgo/internal/config"
	"github.com/solport/jupgo/jupiter"
	"github.com/solport/jupgo/wallet"
)

const (
	solMint = "So11111111111111111111111111111111111111112"
	jupMint = "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.RequireWallet(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	client := jupiter.NewClient(cfg.JupiterBaseURL,
		jupiter.WithAPIKey(cfg.JupiterAPIKey),
		jupiter.WithTimeout(cfg.HTTPTimeout),
		jupiter.WithLogger(logger),
	)

	w, err := wallet.New(cfg.RPCUrl, cfg.WalletPrivateKey)
	if err != nil {
		logger.WithError(err).Fatal("failed to load wallet")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 1. Quote: swap 0.01 SOL into JUP with 1% slippage.
	quote, err := client.GetQuote(ctx, jupiter.NewQuoteRequest(solMint, jupMint, 10_000_000).
		WithSlippageBps(100).
		WithRestrictIntermediateTokens(true))
	if err != nil {
		logger.WithError(err).Fatal("failed to get quote")
	}
	logger.WithFields(logrus.Fields{
		"inAmount":  quote.InAmount,
		"outAmount": quote.OutAmount,
		"hops":      len(quote.RoutePlan),
	}).Info("quote received")

	// 2. Build the unsigned swap transaction for our wallet.
	swap, err := client.GetSwapTransaction(ctx, jupiter.NewSwapRequest(w.Address(), quote).
		WithDynamicComputeUnitLimit(true).
		WithPrioritizationFeeLamports(jupiter.PrioritizationFeeLamports{
			PriorityLevelWithMaxLamports: &jupiter.PriorityLevelWithMaxLamports{
				MaxLamports:   1_000_000,
				PriorityLevel: jupiter.PriorityLevelHigh,
			},
		}))
	if err != nil {
		logger.WithError(err).Fatal("failed to get swap transaction")
	}
	logger.WithField("lastValidBlockHeight", swap.LastValidBlockHeight).Info("swap transaction built")

	// 3. Sign locally and submit through our own RPC.
	sig, err := w.SignAndSend(ctx, swap.SwapTransaction, nil)
	if err != nil {
		logger.WithError(err).Fatal("failed to send swap")
	}
	logger.WithField("signature", sig.String()).Info("swap confirmed")
}
