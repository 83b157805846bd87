package llm

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/cohere"
)

// maxResponseLogBytes is the max length of a model response to log in full (to avoid huge logs).
const maxResponseLogBytes = 8192

// draftTemperature matches the drafting behavior tuned for post content:
// creative enough for copy, stable enough to keep the JSON contract.
const draftTemperature = 0.5

// Client wraps the Cohere chat model used for content drafting
type Client struct {
	model     llms.Model
	modelName string
}

// NewClient creates a new LLM client.
// baseURL is an optional Cohere API override (e.g. a local proxy); empty uses the default.
func NewClient(apiKey, modelName, baseURL string) (*Client, error) {
	opts := []cohere.Option{cohere.WithToken(apiKey), cohere.WithModel(modelName)}
	if baseURL != "" {
		opts = append(opts, cohere.WithBaseURL(baseURL))
	}

	model, err := cohere.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize cohere model: %w", err)
	}

	log.Info().
		Str("model", modelName).
		Str("base_url", baseURL).
		Msg("LLM client initialized")

	return &Client{model: model, modelName: modelName}, nil
}

// newClientWithModel wires an arbitrary llms.Model; used by tests.
func newClientWithModel(model llms.Model, modelName string) *Client {
	return &Client{model: model, modelName: modelName}
}

// logModelResponse logs model response text, truncating if over maxResponseLogBytes.
func logModelResponse(caller, raw string) {
	if len(raw) <= maxResponseLogBytes {
		log.Info().Str("caller", caller).Str("model_response", raw).Msg("Model response")
		return
	}
	log.Info().
		Str("caller", caller).
		Str("model_response", raw[:maxResponseLogBytes]+"... [truncated]").
		Int("model_response_len", len(raw)).
		Msg("Model response")
}
