package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/memledger/internal/usecase"
)

const (
	defaultIdempotencyPrefix = "idempotency:"
	pendingMarker            = "processing"
)

var _ usecase.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: defaultIdempotencyPrefix,
	}
}

// Reserve claims key with SETNX. Losing the race returns the stored
// response, or nil while the winner is still processing.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	set, err := s.client.SetNX(ctx, fullKey, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if set {
		return true, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Released between SETNX and GET; treat as in flight.
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if string(existing) == pendingMarker {
		return false, nil, nil
	}

	return false, existing, nil
}

// Complete stores the final response.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, response, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotent response: %w", err)
	}
	return nil
}

// Release deletes the key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
