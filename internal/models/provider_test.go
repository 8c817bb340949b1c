package models

import (
	"context"
	"testing"
)

func TestParseProvider(t *testing.T) {
	for _, name := range []string{"openrouter", "grok", "openai", "gemini"} {
		if _, err := ParseProvider(name); err != nil {
			t.Fatalf("expected %s to parse: %v", name, err)
		}
	}
	if _, err := ParseProvider("anthropic"); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}

func TestNewModelValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewModel(ctx, ProviderOpenRouter, "m", "", ""); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewModel(ctx, ProviderGrok, "", "key", ""); err == nil {
		t.Fatalf("expected error for missing model name")
	}
	if _, err := NewModel(ctx, Provider("nope"), "m", "key", ""); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
	if _, err := NewModel(ctx, ProviderGemini, "gemini-2.5-flash", " ", ""); err == nil {
		t.Fatalf("expected error for blank gemini key")
	}
}
