// Command quoted runs the demo quote proxy: an HTTP server exposing quote,
// price, and shield lookups backed by the jupiter client, with a short-TTL
// redis cache for prices.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/solport/jupgo/internal/cache"
	"github.com/solport/jupgo/internal/config"
	"github.com/solport/jupgo/internal/proxy"
	"github.com/solport/jupgo/jupiter"
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

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	client := jupiter.NewClient(cfg.JupiterBaseURL,
		jupiter.WithAPIKey(cfg.JupiterAPIKey),
		jupiter.WithTimeout(cfg.HTTPTimeout),
		jupiter.WithRateLimit(5, 10),
		jupiter.WithLogger(logger),
	)

	// Price cache is optional: without redis the proxy still serves, it just
	// hits upstream on every price lookup.
	var prices *cache.PriceCache
	rclient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rclient.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, price caching disabled")
	} else {
		prices = cache.NewPriceCache(rclient, cfg.PriceCacheTTL, logger)
	}

	h := &proxy.Handlers{
		Jupiter: client,
		Prices:  prices,
		DevMode: cfg.DevMode,
		Logger:  logger,
	}

	srv, err := proxy.NewServer(proxy.ServerDeps{
		Handlers: h,
		Config: proxy.ServerConfig{
			Addr:    cfg.QuotedAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.QuotedAPIKey,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	logger.WithField("addr", cfg.QuotedAddr).Info("quoted server starting")

	select {
	case err := <-errCh:
		logger.WithError(err).Fatal("quoted server failed")
	case <-sigCh:
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}
}
