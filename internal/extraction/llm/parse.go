package llm

import (
	"encoding/json"
	"regexp"
)

var (
	fencePattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseResponse pulls a JSON object out of an LLM response, tolerating
// markdown fences and surrounding prose.
func parseResponse(text string) (map[string]any, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return data, true
	}

	if m := fencePattern.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &data); err == nil {
			return data, true
		}
	}

	if m := objectPattern.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), &data); err == nil {
			return data, true
		}
	}

	return nil, false
}
