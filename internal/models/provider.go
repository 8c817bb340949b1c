package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
)

// Provider names a remote model backend.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGrok       Provider = "grok"
	ProviderOpenAI     Provider = "openai"
	ProviderGemini     Provider = "gemini"
)

var defaultBaseURLs = map[Provider]string{
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderGrok:       "https://api.x.ai/v1",
	ProviderOpenAI:     "",
}

// ParseProvider validates a provider name.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(name); p {
	case ProviderOpenRouter, ProviderGrok, ProviderOpenAI, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unknown llm provider %q", name)
	}
}

// NewModel creates a model.LLM for the provider. baseURL overrides the
// provider default for the OpenAI-compatible backends.
func NewModel(ctx context.Context, provider Provider, modelName, apiKey, baseURL string) (model.LLM, error) {
	if provider == ProviderGemini {
		return NewGeminiModel(ctx, modelName, apiKey)
	}

	defaultURL, ok := defaultBaseURLs[provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
	if baseURL == "" {
		baseURL = defaultURL
	}
	return newOpenAICompatible(modelName, apiKey, baseURL, string(provider)+"-go")
}
