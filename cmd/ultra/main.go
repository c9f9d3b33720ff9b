// Command ultra demonstrates the Ultra API flow: fetch an order, sign the
// returned transaction, and hand it back to Jupiter for managed execution.
// Ultra needs no RPC endpoint of its own; only signing happens locally.
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
	solMint  = "So11111111111111111111111111111111111111112"
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
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

	// Ultra signs locally and never submits through this RPC itself, but the
	// wallet still carries the configured endpoint.
	w, err := wallet.New(cfg.RPCUrl, cfg.WalletPrivateKey)
	if err != nil {
		logger.WithError(err).Fatal("failed to load wallet")
	}
	taker := w.Address()

	client := jupiter.NewClient(cfg.JupiterBaseURL,
		jupiter.WithAPIKey(cfg.JupiterAPIKey),
		jupiter.WithTimeout(cfg.HTTPTimeout),
		jupiter.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Check both mints before trading.
	shield, err := client.GetShield(ctx, []string{solMint, usdcMint})
	if err != nil {
		logger.WithError(err).Fatal("failed to get shield info")
	}
	for mint, warnings := range shield.Warnings {
		for _, warn := range warnings {
			logger.WithFields(logrus.Fields{
				"mint":     mint,
				"type":     warn.Type,
				"severity": warn.Severity,
			}).Warn("shield warning")
		}
	}

	// 1. Order: swap 0.01 SOL into USDC. The taker makes Ultra attach an
	// unsigned transaction.
	order, err := client.GetUltraOrder(ctx, jupiter.NewUltraOrderRequest(solMint, usdcMint, 10_000_000).
		WithTaker(taker))
	if err != nil {
		logger.WithError(err).Fatal("failed to get ultra order")
	}
	logger.WithFields(logrus.Fields{
		"inAmount":  order.InAmount,
		"outAmount": order.OutAmount,
		"swapType":  order.SwapType,
		"requestId": order.RequestID,
	}).Info("order received")

	if order.Transaction == "" {
		logger.Fatal("order carried no transaction (is the taker funded?)")
	}

	// 2. Sign the order transaction locally.
	signed, _, err := w.SignTransactionBase64(order.Transaction)
	if err != nil {
		logger.WithError(err).Fatal("failed to sign order transaction")
	}

	// 3. Execute through Jupiter's infrastructure.
	res, err := client.ExecuteUltraOrder(ctx, jupiter.NewUltraExecuteOrderRequest(signed, order.RequestID))
	if err != nil {
		logger.WithError(err).Fatal("failed to execute order")
	}
	if res.Status != "Success" {
		logger.WithFields(logrus.Fields{"code": res.Code, "error": res.Error}).Fatal("order execution failed")
	}
	logger.WithField("signature", res.Signature).Info("order executed")

	// 4. Show the wallet's balances afterwards.
	balances, err := client.GetTokenBalances(ctx, taker)
	if err != nil {
		logger.WithError(err).Fatal("failed to get balances")
	}
	for token, bal := range balances {
		logger.WithFields(logrus.Fields{"token": token, "uiAmount": bal.UIAmount}).Info("balance")
	}
}
