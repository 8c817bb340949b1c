// Package memory extracts, parses and merges structured facts about the user.
package memory

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/easeaico/project-zizi/internal/types"
	"github.com/easeaico/project-zizi/internal/utils"
)

// Fragment is an untrusted, partial memory produced by one extraction call.
// A nil list means the field was absent or unusable.
type Fragment types.CanonicalMemory

// ParseFragment locates the greedy {...} span in raw model output and decodes
// it. Any failure yields an empty fragment.
func ParseFragment(raw string) Fragment {
	span, ok := utils.ExtractJSONObject(raw)
	if !ok {
		slog.Warn("no json object found in extraction output")
		return Fragment{}
	}

	var value any
	if err := json.Unmarshal([]byte(span), &value); err != nil {
		slog.Warn("failed to parse extraction json", "error", err.Error())
		return Fragment{}
	}
	return DecodeFragment(value)
}

// DecodeFragment converts an arbitrary decoded JSON value into a Fragment.
// Unknown keys are ignored and mistyped fields are treated as absent.
func DecodeFragment(value any) Fragment {
	obj, ok := value.(map[string]any)
	if !ok {
		return Fragment{}
	}

	var m types.CanonicalMemory
	if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
		m.Name = name
	}
	for _, f := range types.ListFields {
		raw, ok := lookup(obj, f.Path)
		if !ok {
			continue
		}
		if items, ok := stringList(raw); ok {
			*f.Ref(&m) = items
		}
	}
	return Fragment(m)
}

func lookup(obj map[string]any, path string) (any, bool) {
	group, field, nested := strings.Cut(path, ".")
	if !nested {
		v, ok := obj[group]
		return v, ok
	}
	sub, ok := obj[group].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sub[field]
	return v, ok
}

// stringList keeps the non-empty string elements of a JSON array.
func stringList(raw any) ([]string, bool) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	items := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		items = append(items, s)
	}
	return items, true
}
