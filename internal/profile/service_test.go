package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Profile.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromCSV(t *testing.T) {
	path := writeCSV(t, "First Name,Last Name,Summary,Industry,Websites\n"+
		"John,Doe,Payments veteran,Tech,https://example.com\n")

	s := NewService(nil, nil, path, time.Minute, time.Second)
	p, err := s.FromCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "Payments veteran", p.About)
	assert.Equal(t, "Tech", p.Industry)
	assert.Equal(t, "https://example.com", p.Website)
}

func TestFromCSV_MissingColumnsTolerated(t *testing.T) {
	path := writeCSV(t, "First Name,Last Name\nJane,Roe\n")

	s := NewService(nil, nil, path, time.Minute, time.Second)
	p, err := s.FromCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", p.Name)
	assert.Empty(t, p.Industry)
	assert.Empty(t, p.Website)
}

func TestFromCSV_Errors(t *testing.T) {
	s := NewService(nil, nil, "", time.Minute, time.Second)

	t.Run("missing file", func(t *testing.T) {
		_, err := s.FromCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeCSV(t, "First Name,Last Name\n")
		_, err := s.FromCSV(path)
		assert.Error(t, err)
	})

	t.Run("row without name", func(t *testing.T) {
		path := writeCSV(t, "First Name,Last Name,Industry\n,,Tech\n")
		_, err := s.FromCSV(path)
		assert.Error(t, err)
	})
}

func TestExtractText(t *testing.T) {
	doc := `<html><head>
<title>Acme</title>
<style>body { color: red; }</style>
<script>var tracking = "beacon";</script>
</head><body>
<h1>Acme Corp</h1>
<p>We build   payment rails
for the modern web.</p>
<noscript>enable js</noscript>
</body></html>`

	got := ExtractText(strings.NewReader(doc), 500)

	assert.Contains(t, got, "Acme Corp")
	assert.Contains(t, got, "We build payment rails for the modern web.")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "tracking")
	assert.NotContains(t, got, "enable js")
	assert.NotContains(t, got, "<")
}

func TestExtractText_Truncates(t *testing.T) {
	doc := "<p>" + strings.Repeat("word ", 200) + "</p>"
	got := ExtractText(strings.NewReader(doc), 200)
	assert.LessOrEqual(t, len(got), 200)
	assert.NotEmpty(t, got)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "John Doe", joinName("John", "Doe"))
	assert.Equal(t, "John", joinName("John", ""))
	assert.Equal(t, "Doe", joinName("", "Doe"))
	assert.Equal(t, "", joinName("", ""))
}
