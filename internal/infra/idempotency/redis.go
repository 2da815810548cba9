package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
)

const (
	keyPrefix  = "idempotency:purchase:"
	pending    = "pending"
	DefaultTTL = 24 * time.Hour
)

// RedisStore remembers which purchase an Idempotency-Key produced.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Reserve claims key for a new request. When the key already completed it
// returns the stored purchase ID and reserved=false. A key still being
// processed yields request_in_progress.
func (s *RedisStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, pending, s.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between the two calls
		return s.Reserve(ctx, key)
	}
	if err != nil {
		return "", false, err
	}
	if val == pending {
		return "", false, httperr.ErrConflict("request_in_progress")
	}
	return val, false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, purchaseID string) error {
	return s.client.Set(ctx, keyPrefix+key, purchaseID, s.ttl).Err()
}

// Release frees a reservation whose request failed so it can be retried.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// NewClient builds the Redis client from connection settings.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
