package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Storage is a durable key/value store with TTL support and the atomic
// primitives the auth flow depends on: check-and-increment for rate limit
// counters and compare-and-delete for single-use codes.
type Storage interface {
	Get(ctx context.Context, key string, val any) error
	Set(ctx context.Context, key string, val any, expiresIn time.Duration) error
	Delete(ctx context.Context, key string) error
	// CompareAndDelete removes the entry only if its stored value equals
	// expected, reporting whether it did. Absent keys report false. The
	// comparison and deletion happen as one atomic step.
	CompareAndDelete(ctx context.Context, key string, expected any) (bool, error)
	// Increment bumps the counter at key, starting a fresh window with the
	// given length on first increment. It returns the post-increment count
	// and the time remaining until the window resets.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Ping(ctx context.Context) error
}

type Store[T any] interface {
	Storage() Storage
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Delete(ctx context.Context, key string) error
	CompareAndDelete(ctx context.Context, key string, expected T) (bool, error)
}
