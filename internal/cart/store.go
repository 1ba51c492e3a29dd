package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chadee/pos-backend/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// Store is the cart persistence boundary: load at terminal start, save
// on every change, clear after a successful checkout.
type Store interface {
	Load(ctx context.Context, terminalID string) (*Cart, error)
	Save(ctx context.Context, terminalID string, c *Cart) error
	Clear(ctx context.Context, terminalID string) error
}

// redisClient is the slice of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps one JSON snapshot per terminal so an interrupted
// session resumes with its cart intact.
type RedisStore struct{ R redisClient }

func (s *RedisStore) Load(ctx context.Context, terminalID string) (*Cart, error) {
	b, err := s.R.Get(ctx, s.key(terminalID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	c := New()
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, terminalID string, c *Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, s.key(terminalID), b, redisx.TTLCart).Err()
}

func (s *RedisStore) Clear(ctx context.Context, terminalID string) error {
	return s.R.Del(ctx, s.key(terminalID)).Err()
}

func (s *RedisStore) key(terminalID string) string {
	return fmt.Sprintf(redisx.KeyCart, terminalID)
}
