package storage

import (
	"context"
	"fmt"

	"github.com/easeaico/project-zizi/internal/types"
)

// LoadProfile reads the onboarding keys. Missing keys are left empty.
func LoadProfile(ctx context.Context, kv KV) (types.Profile, error) {
	var p types.Profile
	for key, dst := range map[string]*string{
		UserNameKey:      &p.UserName,
		CompanionKindKey: &p.CompanionKind,
		StoryKey:         &p.Story,
	} {
		value, ok, err := kv.Get(ctx, key)
		if err != nil {
			return types.Profile{}, fmt.Errorf("failed to load profile: %w", err)
		}
		if ok {
			*dst = value
		}
	}
	return p, nil
}

// SeedProfile writes the non-empty fields of p whose keys are still absent.
// Existing onboarding data is never overwritten.
func SeedProfile(ctx context.Context, kv KV, p types.Profile) error {
	for key, value := range map[string]string{
		UserNameKey:      p.UserName,
		CompanionKindKey: p.CompanionKind,
		StoryKey:         p.Story,
	} {
		if value == "" {
			continue
		}
		_, ok, err := kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
		if ok {
			continue
		}
		if err := kv.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}
	return nil
}
