package ai

import "strings"

// StripFences removes one pair of markdown code fences wrapping a model
// response, if present, and trims surrounding whitespace. Models frequently
// wrap JSON in ```json ... ``` despite being told not to. Exactly one
// leading fence and one trailing fence are removed; a payload without
// fences only gets trimmed.
func StripFences(content string) string {
	clean := strings.TrimSpace(content)
	if strings.HasPrefix(clean, "```json") {
		clean = clean[len("```json"):]
	} else if strings.HasPrefix(clean, "```") {
		clean = clean[len("```"):]
	}
	if strings.HasSuffix(clean, "```") {
		clean = clean[:len(clean)-len("```")]
	}
	return strings.TrimSpace(clean)
}
