// Package models 提供各家模型提供方的适配器实现。
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// openaiModel 封装 OpenAI 兼容的聊天客户端。
type openaiModel struct {
	client *openai.Client
	name   string
}

// newOpenAICompatible builds a chat client against baseURL. An empty baseURL
// targets api.openai.com.
func newOpenAICompatible(modelName, apiKey, baseURL, agent string) (model.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	// 创建时一次性生成 UA 头，避免每次请求重复拼接。
	headerValue := fmt.Sprintf("%s/%s go/%s",
		agent, "1.0.0", strings.TrimPrefix(runtime.Version(), "go"))

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHeader("User-Agent", headerValue),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiModel{
		name:   modelName,
		client: &client,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent always performs a single non-streaming completion; the
// stream flag is accepted for interface compatibility.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	params := buildOpenAIParams(req, m.name)

	resp, err := m.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call llm API: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	choice := resp.Choices[0]
	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}
	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{
			Text: choice.Message.Content,
		})
	}

	return &model.LLMResponse{
		Content:      content,
		TurnComplete: true,
	}, nil
}
