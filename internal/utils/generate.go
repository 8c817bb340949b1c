package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
)

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("empty model response")

// GenerateText runs a single non-streaming request and returns the trimmed
// text of the first response.
func GenerateText(ctx context.Context, llm model.LLM, req *model.LLMRequest) (string, error) {
	if llm == nil {
		return "", fmt.Errorf("llm model is not configured")
	}

	var resp *model.LLMResponse
	var err error
	for r, e := range llm.GenerateContent(ctx, req, false) {
		resp, err = r, e
		break
	}
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if resp.ErrorCode != "" {
		return "", fmt.Errorf("model returned error %s: %s", resp.ErrorCode, resp.ErrorMessage)
	}

	text := strings.TrimSpace(ExtractContentText(resp.Content))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
