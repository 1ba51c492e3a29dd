package reporting

import (
	"context"
	"errors"
	"fmt"

	"github.com/chadee/pos-backend/internal/orders"
	"github.com/chadee/pos-backend/internal/redisx"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Counters is the write side of the live sales board.
type Counters interface {
	// SeenEvent marks the event processed and reports whether it had
	// been seen before.
	SeenEvent(ctx context.Context, eventID string) (bool, error)
	RecordOrder(ctx context.Context, day string, total decimal.Decimal, items []orders.ItemLine) error
}

// SnapshotSource is the read side, served by GET /reports/live.
type SnapshotSource interface {
	DaySnapshot(ctx context.Context, day string) (DaySnapshot, error)
}

type DaySnapshot struct {
	Revenue decimal.Decimal `json:"revenue"`
	Items   []ItemCount     `json:"items"`
}

type ItemCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// topSellers caps the live board; the full breakdown lives in the daily
// report, which is built from Postgres.
const topSellers = 10

// RedisCounters keeps per-day revenue and per-item sold quantities in
// Redis, keyed by the shop-local date.
type RedisCounters struct {
	R       *redis.Client
	Service string
}

func (c *RedisCounters) SeenEvent(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf(redisx.KeyDedup, c.Service, eventID)
	set, err := c.R.SetNX(ctx, key, "1", redisx.TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

func (c *RedisCounters) RecordOrder(ctx context.Context, day string, total decimal.Decimal, items []orders.ItemLine) error {
	revenueKey := fmt.Sprintf(redisx.KeyDayRevenue, day)
	itemsKey := fmt.Sprintf(redisx.KeyDayItems, day)

	pipe := c.R.TxPipeline()
	pipe.IncrByFloat(ctx, revenueKey, total.InexactFloat64())
	for _, it := range items {
		pipe.ZIncrBy(ctx, itemsKey, float64(it.Quantity), it.Name)
	}
	pipe.Expire(ctx, revenueKey, redisx.TTLDayCounters)
	pipe.Expire(ctx, itemsKey, redisx.TTLDayCounters)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCounters) DaySnapshot(ctx context.Context, day string) (DaySnapshot, error) {
	snap := DaySnapshot{Revenue: decimal.Zero, Items: []ItemCount{}}

	s, err := c.R.Get(ctx, fmt.Sprintf(redisx.KeyDayRevenue, day)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// no sales yet today
	case err != nil:
		return snap, err
	default:
		rev, err := decimal.NewFromString(s)
		if err != nil {
			return snap, fmt.Errorf("parse revenue counter: %w", err)
		}
		snap.Revenue = rev.Round(2)
	}

	zs, err := c.R.ZRevRangeWithScores(ctx, fmt.Sprintf(redisx.KeyDayItems, day), 0, topSellers-1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return snap, err
	}
	for _, z := range zs {
		name, _ := z.Member.(string)
		snap.Items = append(snap.Items, ItemCount{Name: name, Quantity: int64(z.Score)})
	}
	return snap, nil
}
