package store

import (
	"context"
	"errors"
	"sync"
)

// KV is the durable whole-value key/value contract shared by every backend.
type KV interface {
	// Get returns found=false, with no error, when key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}

// ErrLockNotObtained is returned by a Locker that gave up waiting.
var ErrLockNotObtained = errors.New("store: lock not obtained")

// Locker serializes read-modify-write cycles on a key.
type Locker interface {
	// Lock blocks until the named lock is held or ctx is done. The returned
	// func releases it and is safe to call once.
	Lock(ctx context.Context, name string) (release func(), err error)
}

// LocalLocker is a Locker valid within one process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(name string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[name]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[name] = ch
	}
	return ch
}

func (l *LocalLocker) Lock(ctx context.Context, name string) (func(), error) {
	ch := l.slot(name)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrLockNotObtained, ctx.Err())
	}

	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
