package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KV stores values as plain strings under their key, without expiry.
type KV struct {
	client *redis.Client
}

// NewKV creates a Redis backed store.KV
func NewKV(client *redis.Client) *KV {
	return &KV{
		client: client,
	}
}

// Get retrieves the value for key
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value for key
func (s *KV) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Ping checks that Redis answers
func (s *KV) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *KV) Close() error {
	return s.client.Close()
}
