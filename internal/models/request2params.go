package models

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// responseSchemaName labels the structured output format sent upstream.
const responseSchemaName = "response"

// buildOpenAIParams converts ADK request to OpenAI parameters
func buildOpenAIParams(req *model.LLMRequest, model string) *openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if req.Model == "" {
		params.Model = model
	}

	messages := convertContentsToMessages(req.Contents)
	if len(messages) > 0 {
		params.Messages = messages
	}

	if req.Config != nil {
		if req.Config.Temperature != nil {
			params.Temperature = openai.Float(float64(*req.Config.Temperature))
		}
		if req.Config.MaxOutputTokens > 0 {
			params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
		}
		if req.Config.TopP != nil {
			params.TopP = openai.Float(float64(*req.Config.TopP))
		}
		if format, ok := convertResponseFormat(req.Config); ok {
			params.ResponseFormat = format
		}
	}

	return &params
}

// convertResponseFormat maps the genai JSON response settings onto an OpenAI
// response_format. A schema wins over a bare JSON MIME type.
func convertResponseFormat(cfg *genai.GenerateContentConfig) (openai.ChatCompletionNewParamsResponseFormatUnion, bool) {
	var schema map[string]any
	switch s := cfg.ResponseJsonSchema.(type) {
	case *jsonschema.Schema:
		if s != nil {
			schema = convertSchemaToJSONSchema(s)
		}
	case map[string]any:
		schema = s
	}

	if schema != nil {
		return openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   responseSchemaName,
					Schema: schema,
				},
			},
		}, true
	}
	if cfg.ResponseMIMEType == "application/json" {
		return openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}, true
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{}, false
}

// convertSchemaToJSONSchema converts jsonschema.Schema to JSON Schema format
func convertSchemaToJSONSchema(schema *jsonschema.Schema) map[string]any {
	result := make(map[string]any)

	// Set type
	if schema.Type != "" {
		result["type"] = string(schema.Type)
	} else {
		result["type"] = "object"
	}

	// Convert properties
	if len(schema.Properties) > 0 {
		properties := make(map[string]any)
		for name, propSchema := range schema.Properties {
			if propSchema != nil {
				properties[name] = convertSchemaProperty(propSchema)
			}
		}
		if len(properties) > 0 {
			result["properties"] = properties
		}
	}

	// Set required fields
	if len(schema.Required) > 0 {
		result["required"] = schema.Required
	} else {
		result["required"] = []string{}
	}

	return result
}

// convertSchemaProperty converts a single jsonschema.Schema property to JSON Schema format
func convertSchemaProperty(schema *jsonschema.Schema) map[string]any {
	if schema == nil {
		return nil
	}

	prop := make(map[string]any)

	// Handle type - support both single and multiple types
	if len(schema.Types) > 0 {
		// Multiple types - use first type (OpenAI typically supports single type)
		prop["type"] = schema.Types[0]
	} else if schema.Type != "" {
		prop["type"] = schema.Type
	}

	if schema.Description != "" {
		prop["description"] = schema.Description
	}

	if schema.Format != "" {
		prop["format"] = schema.Format
	}

	// Handle enum
	if len(schema.Enum) > 0 {
		prop["enum"] = schema.Enum
	}

	// Handle const
	if schema.Const != nil {
		prop["const"] = *schema.Const
	}

	// Handle default value - parse json.RawMessage
	if len(schema.Default) > 0 {
		var defaultVal any
		if err := json.Unmarshal(schema.Default, &defaultVal); err == nil {
			prop["default"] = defaultVal
		}
	}

	// Handle numeric constraints
	if schema.Minimum != nil {
		prop["minimum"] = *schema.Minimum
	}
	if schema.Maximum != nil {
		prop["maximum"] = *schema.Maximum
	}
	if schema.ExclusiveMinimum != nil {
		prop["exclusiveMinimum"] = *schema.ExclusiveMinimum
	}
	if schema.ExclusiveMaximum != nil {
		prop["exclusiveMaximum"] = *schema.ExclusiveMaximum
	}

	// Handle string constraints
	if schema.MinLength != nil {
		prop["minLength"] = *schema.MinLength
	}
	if schema.MaxLength != nil {
		prop["maxLength"] = *schema.MaxLength
	}
	if schema.Pattern != "" {
		prop["pattern"] = schema.Pattern
	}

	// Handle items for array types
	if schema.Items != nil {
		prop["items"] = convertSchemaProperty(schema.Items)
	}

	// Handle properties for object types
	if len(schema.Properties) > 0 {
		properties := make(map[string]any)
		for name, propSchema := range schema.Properties {
			if propSchema != nil {
				properties[name] = convertSchemaProperty(propSchema)
			}
		}
		if len(properties) > 0 {
			prop["properties"] = properties
		}
	}

	// Handle required for nested objects - only include if non-empty
	if len(schema.Required) > 0 {
		prop["required"] = schema.Required
	}

	return prop
}

// convertContentsToMessages converts genai.Content to OpenAI messages
func convertContentsToMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion

	for _, content := range contents {
		if content == nil {
			continue
		}

		var sb strings.Builder
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		textContent := sb.String()

		switch content.Role {
		case "user":
			messages = append(messages, openai.UserMessage(textContent))
		case "model", "assistant":
			messages = append(messages, openai.AssistantMessage(textContent))
		case "system":
			messages = append(messages, openai.SystemMessage(textContent))
		default:
			slog.Warn("unknown content role, sending as user", "role", content.Role)
			messages = append(messages, openai.UserMessage(textContent))
		}
	}

	return messages
}
