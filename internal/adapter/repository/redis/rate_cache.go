package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

const rateTableKey = "rates:latest"

// RateCache implements usecase.RateCache using Redis.
// It holds one serialized rate table; a zero TTL keeps it forever.
type RateCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRateCache creates a new RateCache.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{
		client: client,
		prefix: "expensetracker:",
		ttl:    ttl,
	}
}

type cachedRateTable struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// Load returns the cached table, or nil when nothing is cached.
func (c *RateCache) Load(ctx context.Context) (*domain.RateTable, error) {
	raw, err := c.client.Get(ctx, c.prefix+rateTableKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load rate table: %w", err)
	}

	var cached cachedRateTable
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decode cached rate table: %w", err)
	}

	return &domain.RateTable{
		Base:      cached.Base,
		Rates:     cached.Rates,
		FetchedAt: cached.FetchedAt,
	}, nil
}

// Save replaces the cached table.
func (c *RateCache) Save(ctx context.Context, table *domain.RateTable) error {
	raw, err := json.Marshal(cachedRateTable{
		Base:      table.Base,
		Rates:     table.Rates,
		FetchedAt: table.FetchedAt,
	})
	if err != nil {
		return fmt.Errorf("encode rate table: %w", err)
	}

	return c.client.Set(ctx, c.prefix+rateTableKey, raw, c.ttl).Err()
}
