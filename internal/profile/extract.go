package profile

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText tokenizes an HTML document and returns its visible text,
// whitespace-squeezed and truncated to limit characters. Script and style
// contents are skipped.
func ExtractText(r io.Reader, limit int) string {
	tokenizer := html.NewTokenizer(r)

	var sb strings.Builder
	skipDepth := 0
	for sb.Len() <= limit {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return clip(sb.String(), limit)
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isNonContentTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isNonContentTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return clip(sb.String(), limit)
}

func isNonContentTag(name string) bool {
	return name == "script" || name == "style" || name == "noscript"
}

func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit])
}
