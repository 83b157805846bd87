package llm

import (
	"encoding/json"
	"strings"
)

// DraftParseError indicates the model reply did not contain the required JSON
// object. A drafting failure is all-or-nothing: no partial draft is produced.
type DraftParseError struct {
	Reason string
}

func (e *DraftParseError) Error() string {
	return "draft parse failed: " + e.Reason
}

// ExtractJSONObject returns the substring between the first '{' and the last
// '}' of text, validated as a JSON object. Model replies routinely wrap the
// object in prose or code fences; everything outside the braces is discarded.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &DraftParseError{Reason: "no JSON object in model response"}
	}

	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, &DraftParseError{Reason: "model response is not valid JSON"}
	}

	return json.RawMessage(candidate), nil
}
