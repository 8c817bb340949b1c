package models

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// geminiModel moves system contents into the system instruction, since the
// Gemini API only accepts user and model turns.
type geminiModel struct {
	inner model.LLM
}

func NewGeminiModel(ctx context.Context, modelName, apiKey string) (model.LLM, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	inner, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini model: %w", err)
	}
	return &geminiModel{inner: inner}, nil
}

func (m *geminiModel) Name() string {
	return m.inner.Name()
}

func (m *geminiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return m.inner.GenerateContent(ctx, hoistSystemContents(req), stream)
}

// hoistSystemContents returns a copy of req with system-role contents merged
// into Config.SystemInstruction. req is not modified.
func hoistSystemContents(req *model.LLMRequest) *model.LLMRequest {
	if req == nil {
		return nil
	}

	out := *req
	out.Contents = make([]*genai.Content, 0, len(req.Contents))
	var system []*genai.Part
	for _, c := range req.Contents {
		if c != nil && c.Role == "system" {
			system = append(system, c.Parts...)
			continue
		}
		out.Contents = append(out.Contents, c)
	}
	if len(system) == 0 {
		return &out
	}

	cfg := genai.GenerateContentConfig{}
	if req.Config != nil {
		cfg = *req.Config
	}
	if cfg.SystemInstruction != nil {
		system = append(append([]*genai.Part{}, cfg.SystemInstruction.Parts...), system...)
	}
	cfg.SystemInstruction = &genai.Content{Role: "user", Parts: system}
	out.Config = &cfg
	return &out
}
