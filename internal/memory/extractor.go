package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/project-zizi/internal/types"
	"github.com/easeaico/project-zizi/internal/utils"
)

const extractionInstructionText = `
You are a memory assistant helping an emotionally intelligent AI maintain a friendly, ongoing relationship with a human user.

Extract only the most important, clearly stated or implied personal details and return them in the following clean JSON format (include all keys, even if some are empty):

{
  "name": {{json .Name}},
  "preferences": {
    "likes": [],
    "dislikes": []
  },
  "goals": [],
  "health": {
    "allergies": [],
    "dietaryRestrictions": [],
    "conditions": []
  },
  "favorites": {
    "books": [],
    "movies": [],
    "foods": [],
    "music": [],
    "holidays": []
  },
  "pastExperiences": [],
  "personalityTraits": [],
  "learningGoals": [],
  "emotionalState": [],
  "skills": [],
  "lifeMilestones": [],
  "importantDates": [],
  "memoryNotes": []
}

--- Extraction Rules ---
1. Extract only clearly stated or implied details about the user. Never guess or invent.
2. Store things the user enjoys under "likes", and things they dislike under "dislikes".
3. Goals can include anything they want to achieve or improve, big or small.
4. Use "health" for allergies, dietary choices, or emotional/mental/physical conditions.
5. Any extra emotional context, recent events, or personal quirks should go in "memoryNotes".
6. Store favorite things like books, movies, foods, and music under "favorites".
7. If the user shares past experiences or significant events, store them under "pastExperiences".
8. Personality traits or behavioral preferences go in "personalityTraits".
9. Track learning goals or personal development under "learningGoals".
10. Track current or past emotional states in "emotionalState".
11. Track skills the user is learning or has mastered under "skills".
12. Significant life milestones (e.g., graduation, anniversaries) go under "lifeMilestones".
13. Important dates (e.g., birthdays, anniversaries) go under "importantDates".
14. Use the user's own words as much as possible, and only paraphrase when necessary.
15. Return the JSON data only. No text outside it.
16. NEVER include the assistant's preferences, experiences, or statements. Focus ONLY on the user.

Be sure to extract as much meaningful data as possible without making assumptions about vague or incomplete information.
`

var extractionInstruction = template.Must(template.New("extraction").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}).Parse(extractionInstructionText))

// Extractor asks a generative model for memory facts in one utterance.
type Extractor struct {
	model      model.LLM
	structured bool
}

// NewExtractor returns an Extractor. When structured is set the request also
// carries the memory JSON schema as its response format.
func NewExtractor(m model.LLM, structured bool) *Extractor {
	return &Extractor{model: m, structured: structured}
}

// Extract returns the raw model output for utterance. The text is not parsed;
// see ParseFragment.
func (e *Extractor) Extract(ctx context.Context, utterance, currentName string) (string, error) {
	if e == nil || e.model == nil {
		return "", fmt.Errorf("memory extractor not configured")
	}

	instruction, err := BuildExtractionInstruction(currentName)
	if err != nil {
		return "", err
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(instruction, "system"),
			genai.NewContentFromText(utterance, "user"),
		},
	}
	if e.structured {
		req.Config = &genai.GenerateContentConfig{
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: ExtractionSchema(),
		}
	}

	raw, err := utils.GenerateText(ctx, e.model, req)
	if err != nil {
		return "", fmt.Errorf("failed to extract memory: %w", err)
	}
	return raw, nil
}

// BuildExtractionInstruction renders the extraction rules around the name
// already known for the user.
func BuildExtractionInstruction(currentName string) (string, error) {
	var buf bytes.Buffer
	if err := extractionInstruction.Execute(&buf, struct{ Name string }{Name: currentName}); err != nil {
		return "", fmt.Errorf("failed to build extraction instruction: %w", err)
	}
	return buf.String(), nil
}

// ExtractionSchema describes the full CanonicalMemory shape. Every key is
// required so the model always returns the complete object.
func ExtractionSchema() *jsonschema.Schema {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"name": {Type: "string"}},
		Required:   []string{"name"},
	}

	for _, f := range types.ListFields {
		list := &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
		group, field, nested := strings.Cut(f.Path, ".")
		if !nested {
			root.Properties[group] = list
			root.Required = append(root.Required, group)
			continue
		}
		sub, ok := root.Properties[group]
		if !ok {
			sub = &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
			root.Properties[group] = sub
			root.Required = append(root.Required, group)
		}
		sub.Properties[field] = list
		sub.Required = append(sub.Required, field)
	}
	return root
}
