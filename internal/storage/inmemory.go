package storage

import (
	"context"
	"sync"
)

// InMemoryKV is a process-local KV, used for tests and ephemeral sessions.
type InMemoryKV struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewInMemoryKV returns an empty InMemoryKV.
func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{entries: make(map[string]string)}
}

func (s *InMemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *InMemoryKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *InMemoryKV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *InMemoryKV) Close() error { return nil }
