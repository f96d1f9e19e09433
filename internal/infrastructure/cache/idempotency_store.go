package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// StoredResponse is a response captured for replay.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps the first successful response per idempotency key.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Get returns the stored response for key, or nil if there is none.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*StoredResponse, error) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key %s: %w", key, err)
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode idempotency key %s: %w", key, err)
	}
	return &resp, nil
}

// Save stores resp under key unless a response is already stored.
// It reports whether this call stored it.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp *StoredResponse) (bool, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return false, fmt.Errorf("encode idempotency key %s: %w", key, err)
	}

	stored, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("save idempotency key %s: %w", key, err)
	}
	return stored, nil
}

// Ping checks the Redis connection.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
