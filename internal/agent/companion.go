// Package agent provides the companion reply generator.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/project-zizi/internal/types"
	"github.com/easeaico/project-zizi/internal/utils"
)

// Companion generates the assistant reply for an ordered message sequence.
type Companion struct {
	model       model.LLM
	temperature *float32
}

// NewCompanion returns a Companion backed by m. temperature may be nil to use
// the provider default.
func NewCompanion(m model.LLM, temperature *float32) *Companion {
	return &Companion{model: m, temperature: temperature}
}

// Reply sends messages in order and returns the reply text.
func (c *Companion) Reply(ctx context.Context, messages []types.Message) (string, error) {
	if c == nil || c.model == nil {
		return "", fmt.Errorf("companion model is not configured")
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to reply to")
	}

	req := &model.LLMRequest{
		Contents: toContents(messages),
	}
	if c.temperature != nil {
		t := *c.temperature
		req.Config = &genai.GenerateContentConfig{Temperature: &t}
	}

	reply, err := utils.GenerateText(ctx, c.model, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return reply, nil
}

func toContents(messages []types.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		switch msg.Role {
		case types.RoleSystem:
			role = "system"
		case types.RoleAssistant:
			role = "model"
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.Role(role)))
	}
	return contents
}
