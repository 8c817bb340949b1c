package utils

import "strings"

// ExtractJSONObject returns the greedy span from the first '{' to the last
// '}' in raw. ok is false when no such span exists.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
