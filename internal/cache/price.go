// Package cache provides the redis-backed price cache used by the quoted
// demo server. Quotes are never cached; prices are, briefly, to stay under
// the free tier's rate limits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/solport/jupgo/jupiter"
)

// ErrMiss is returned when no fresh entry exists for a mint.
var ErrMiss = errors.New("cache: miss")

const priceKeyPrefix = "jupgo:price:"

// PriceCache stores TokenPrice entries with a TTL.
type PriceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewPriceCache wraps an existing redis client. A ttl <= 0 defaults to 10s.
func NewPriceCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *PriceCache {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &PriceCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached price for a mint, or ErrMiss.
func (p *PriceCache) Get(ctx context.Context, mint string) (*jupiter.TokenPrice, error) {
	raw, err := p.client.Get(ctx, priceKeyPrefix+mint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get price: %w", err)
	}

	var out jupiter.TokenPrice
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cache: decode price: %w", err)
	}
	return &out, nil
}

// Set stores a price entry for the configured TTL. Failures are logged, not
// returned; a dead cache must not break price lookups.
func (p *PriceCache) Set(ctx context.Context, mint string, price *jupiter.TokenPrice) {
	raw, err := json.Marshal(price)
	if err != nil {
		p.logger.WithError(err).Warn("failed to encode price for cache")
		return
	}
	if err := p.client.Set(ctx, priceKeyPrefix+mint, raw, p.ttl).Err(); err != nil {
		p.logger.WithError(err).Warn("failed to cache price")
	}
}
