// Package storage implements the key/value store the companion persists to.
package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// KV is the persistent key/value contract.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keys shared with the onboarding flow.
const (
	MemoryKey        = "ziziMemory"
	UserNameKey      = "username"
	CompanionKindKey = "petType"
	StoryKey         = "customStory"
)

// NewStore opens PostgreSQL when databaseURL is set and a local SQLite file
// at storePath otherwise.
func NewStore(ctx context.Context, databaseURL, storePath string) (KV, error) {
	if databaseURL != "" {
		slog.Info("using postgres store")
		kv, err := NewPostgresKV(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return kv, nil
	}
	if storePath == "" {
		return nil, fmt.Errorf("either database url or store path is required")
	}
	slog.Info("using sqlite store", "path", storePath)
	kv, err := NewSQLiteKV(ctx, storePath)
	if err != nil {
		return nil, err
	}
	return kv, nil
}
