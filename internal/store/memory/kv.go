// Package memory is a map-backed store.KV for ephemeral runs and tests.
package memory

import (
	"context"
	"sync"
)

type KV struct {
	mu     sync.RWMutex
	values map[string]string
	writes map[string]int

	// Fail*, when set, are returned by the matching operation.
	FailGet  error
	FailSet  error
	FailPing error
}

func New() *KV {
	return &KV{values: make(map[string]string), writes: make(map[string]int)}
}

func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	kv.mu.RLock()
	defer kv.mu.RUnlock()

	if kv.FailGet != nil {
		return "", false, kv.FailGet
	}
	v, ok := kv.values[key]
	return v, ok, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.FailSet != nil {
		return kv.FailSet
	}
	kv.values[key] = value
	kv.writes[key]++
	return nil
}

func (kv *KV) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.FailPing
}

func (kv *KV) Close() error { return nil }

// Writes counts successful Set calls for key.
func (kv *KV) Writes(key string) int {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	return kv.writes[key]
}

// Seed stores value without counting a write.
func (kv *KV) Seed(key, value string) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
}
