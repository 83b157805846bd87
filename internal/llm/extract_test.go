package llm

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"leading prose", `Sure, here you go: {"a":1}`, `{"a":1}`, false},
		{"trailing prose", `{"a":1} hope that helps!`, `{"a":1}`, false},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"nested braces", `text {"a":{"b":2}} text`, `{"a":{"b":2}}`, false},
		{"no opening brace", `just words }`, "", true},
		{"no closing brace", `{ unterminated`, "", true},
		{"empty", "", "", true},
		{"braces reversed", `} before {`, "", true},
		{"unparsable interior", `{"a": trailing,}`, "", true},
		{"two objects spans both", `{"a":1} and {"b":2}`, "", true}, // first-{ to last-} is not valid JSON
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSONObject(%q) = %s, want error", tt.in, got)
				}
				var parseErr *DraftParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("error is %T, want *DraftParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONObject(%q) error: %v", tt.in, err)
			}
			if string(got) != tt.want {
				t.Errorf("ExtractJSONObject(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
