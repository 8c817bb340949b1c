package emotion

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/project-zizi/internal/utils"
)

var classifierInstruction = `You are an AI emotion detector. Analyze only the user's input, not the assistant's response, and identify the single emotion that best captures the user's underlying tone or feeling. Choose exclusively from the following list of predefined emotions:
` + vocabulary() + `.
Respond with exactly one emotion word. No explanations, no repetition of the user's input. Always select the most accurate overall emotional tone conveyed. Output nothing except the chosen emotion.`

// Classifier labels a single utterance with one emotion.
type Classifier struct {
	model model.LLM
}

// NewClassifier returns a Classifier backed by m.
func NewClassifier(m model.LLM) *Classifier {
	return &Classifier{model: m}
}

// Classify returns the emotion label for text. It never fails: any transport,
// empty or out-of-vocabulary answer yields EmotionUnknown.
func (c *Classifier) Classify(ctx context.Context, text string) EmotionLabel {
	if c == nil || c.model == nil {
		slog.Warn("emotion classifier not configured")
		return EmotionUnknown
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(classifierInstruction, "system"),
			genai.NewContentFromText(text, "user"),
		},
	}

	answer, err := utils.GenerateText(ctx, c.model, req)
	if err != nil {
		slog.Warn("emotion classification unavailable", "error", err.Error())
		return EmotionUnknown
	}

	label, ok := ParseLabel(strings.TrimSpace(answer))
	if !ok {
		slog.Warn("emotion classifier returned unknown label", "label", answer)
		return EmotionUnknown
	}
	return label
}
