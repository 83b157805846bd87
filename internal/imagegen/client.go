package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// DefaultMaxPrompts caps how many prompts are attempted per generation run.
const DefaultMaxPrompts = 3

// Client calls the external image generation endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	maxPrompts int
}

// NewClient creates a new image generation client.
// maxPrompts <= 0 falls back to DefaultMaxPrompts.
func NewClient(endpoint, model string, maxPrompts int, timeout time.Duration) *Client {
	if maxPrompts <= 0 {
		maxPrompts = DefaultMaxPrompts
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		model:      model,
		maxPrompts: maxPrompts,
	}
}

// ParsePrompts normalizes a raw instruction payload into a prompt list.
// Accepts a JSON string array, a comma-separated list, or a single prompt.
func ParsePrompts(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var prompts []string
		if err := json.Unmarshal([]byte(raw), &prompts); err == nil {
			return compact(prompts)
		}
	}

	if strings.Contains(raw, ",") {
		return compact(strings.Split(raw, ","))
	}

	return []string{raw}
}

// Generate resolves prompts to image URLs sequentially, best effort: a
// failing prompt is logged and skipped, never escalated. At most
// maxPrompts prompts are attempted; order of the result follows the order
// of the prompts that succeeded. An empty result is valid.
func (c *Client) Generate(ctx context.Context, prompts []string) []string {
	if len(prompts) > c.maxPrompts {
		log.Debug().
			Int("given", len(prompts)).
			Int("max", c.maxPrompts).
			Msg("Truncating image prompts")
		prompts = prompts[:c.maxPrompts]
	}

	var urls []string
	for i, prompt := range prompts {
		url, err := c.generateOne(ctx, prompt)
		if err != nil {
			log.Warn().Err(err).
				Int("prompt_index", i).
				Str("prompt", truncate(prompt, 80)).
				Msg("Image generation failed, skipping prompt")
			continue
		}
		log.Info().Int("prompt_index", i).Str("image_url", url).Msg("Image generated")
		urls = append(urls, url)
	}
	return urls
}

func (c *Client) generateOne(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"prompt": prompt,
		"model":  c.model,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return extractImageURL(string(body))
}

// extractImageURL pulls imageUrl from the final JSON line of a possibly
// multi-line, stream-prefixed response (frames arrive as "data: {...}").
func extractImageURL(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("empty response body")
	}

	lines := strings.Split(body, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])

	start := strings.Index(last, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object on final response line")
	}
	last = last[start:]

	url := gjson.Get(last, "imageUrl")
	if !url.Exists() || url.String() == "" {
		return "", fmt.Errorf("no imageUrl in response")
	}
	return url.String(), nil
}

func compact(prompts []string) []string {
	out := prompts[:0]
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
