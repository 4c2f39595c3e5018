package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/storage/memory/v2"
)

// MemoryStorage keeps everything in process memory. Meant for single-node
// deployments and tests; the atomic primitives degrade to a mutex since there
// is no cross-process sharing to coordinate.
type MemoryStorage struct {
	mu       sync.Mutex
	mem      *memory.Storage
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	Count   int64
	ResetAt time.Time
}

func (s *MemoryStorage) Get(ctx context.Context, key string, val any) error {
	data, err := s.mem.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, val)
}

func (s *MemoryStorage) Set(ctx context.Context, key string, val any, expiresIn time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.mem.Set(key, data, expiresIn)
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	data, err := s.mem.Get(key)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNotFound
	}
	return s.mem.Delete(key)
}

func (s *MemoryStorage) CompareAndDelete(ctx context.Context, key string, expected any) (bool, error) {
	want, err := json.Marshal(expected)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.mem.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil || string(data) != string(want) {
		return false, nil
	}
	return true, s.mem.Delete(key)
}

// Increment keeps counters in their own map with exact ResetAt deadlines.
// The byte store truncates TTLs to whole seconds, which would expire a
// counter early in the last sub-second of its window.
func (s *MemoryStorage) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	counter := s.counters[key]
	if counter == nil || !counter.ResetAt.After(now) {
		counter = &memoryCounter{ResetAt: now.Add(window)}
		s.counters[key] = counter
	}
	counter.Count++
	return counter.Count, counter.ResetAt.Sub(now), nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		mem:      memory.New(memory.Config{GCInterval: 10 * time.Second}),
		counters: make(map[string]*memoryCounter),
	}
}
