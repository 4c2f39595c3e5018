package store

import (
	"context"
	"time"
)

type prefixedStorage struct {
	underlying Storage
	prefix     string
}

func (p *prefixedStorage) Get(ctx context.Context, key string, val any) error {
	return p.underlying.Get(ctx, p.prefix+key, val)
}

func (p *prefixedStorage) Set(ctx context.Context, key string, val any, expiresIn time.Duration) error {
	return p.underlying.Set(ctx, p.prefix+key, val, expiresIn)
}

func (p *prefixedStorage) Delete(ctx context.Context, key string) error {
	return p.underlying.Delete(ctx, p.prefix+key)
}

func (p *prefixedStorage) CompareAndDelete(ctx context.Context, key string, expected any) (bool, error) {
	return p.underlying.CompareAndDelete(ctx, p.prefix+key, expected)
}

func (p *prefixedStorage) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return p.underlying.Increment(ctx, p.prefix+key, window)
}

func (p *prefixedStorage) Ping(ctx context.Context) error {
	return p.underlying.Ping(ctx)
}

func StorageWithPrefix(storage Storage, prefix string) Storage {
	return &prefixedStorage{
		underlying: storage,
		prefix:     prefix,
	}
}
