package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/easeaico/project-zizi/internal/types"
)

// MemoryRepo persists the canonical memory record as JSON under MemoryKey.
type MemoryRepo struct {
	kv KV
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(kv KV) *MemoryRepo {
	return &MemoryRepo{kv: kv}
}

// Load returns the stored record. ok is false when nothing usable was stored.
func (r *MemoryRepo) Load(ctx context.Context) (types.CanonicalMemory, bool, error) {
	raw, ok, err := r.kv.Get(ctx, MemoryKey)
	if err != nil {
		return types.CanonicalMemory{}, false, fmt.Errorf("failed to load memory: %w", err)
	}
	if !ok {
		return types.CanonicalMemory{}, false, nil
	}

	var m types.CanonicalMemory
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		slog.Warn("stored memory is malformed, starting fresh", "error", err.Error())
		return types.CanonicalMemory{}, false, nil
	}
	m.Normalize()
	return m, true, nil
}

// Save writes m, replacing any stored record.
func (r *MemoryRepo) Save(ctx context.Context, m types.CanonicalMemory) error {
	out := m.Clone()
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode memory: %w", err)
	}
	if err := r.kv.Set(ctx, MemoryKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}
	return nil
}

// Reset deletes the stored record.
func (r *MemoryRepo) Reset(ctx context.Context) error {
	if err := r.kv.Delete(ctx, MemoryKey); err != nil {
		return fmt.Errorf("failed to reset memory: %w", err)
	}
	return nil
}
