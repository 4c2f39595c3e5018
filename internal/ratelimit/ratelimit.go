package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hoanvu/atelier/internal/store"
	"github.com/hoanvu/atelier/params"
)

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts events in fixed, non-overlapping windows. Bursts straddling
// a window boundary may pass up to twice the limit; accepted tradeoff.
type Limiter struct {
	limit   int
	window  time.Duration
	storage store.Storage
}

// Check consumes one unit of quota for key and reports whether the event is
// allowed. Quota is consumed even when the answer is no, so hammering a
// throttled key never shortens the wait. Storage errors propagate; callers
// treat them as fatal to the guarded action.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.storage.Increment(ctx, params.RateLimitKeyPrefix+key, l.window)
	if err != nil {
		return Result{}, err
	}
	if count > int64(l.limit) {
		retryAfter := ttl
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Result{RetryAfter: retryAfter}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - int(count)}, nil
}

// Factory hands out limiters memoized by their (limit, window) signature so
// concurrent requests share a single instance per configuration.
type Factory struct {
	storage  store.Storage
	mu       sync.Mutex
	limiters map[string]*Limiter
}

func (f *Factory) Limiter(limit int, window time.Duration) *Limiter {
	sig := fmt.Sprintf("%d/%s", limit, window)

	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.limiters[sig]; ok {
		return l
	}
	l := &Limiter{limit: limit, window: window, storage: f.storage}
	f.limiters[sig] = l
	return l
}

func NewFactory(storage store.Storage) *Factory {
	return &Factory{
		storage:  storage,
		limiters: make(map[string]*Limiter),
	}
}
