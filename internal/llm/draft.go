package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/influence-hq/influence/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

// DraftContent generates a structured post draft for the given request.
// A single model call, no retry, no streaming; the request context is the
// only cancellation mechanism. Parse failures are *DraftParseError.
func (c *Client) DraftContent(ctx context.Context, req models.GenerationRequest) (*models.ContentDraft, error) {
	log.Debug().
		Str("post_type", req.PostType).
		Str("client", req.Profile.Name).
		Str("target_industry", req.TargetIndustry).
		Msg("Drafting content")

	prompt := buildDraftPrompt(req)

	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(draftTemperature),
	)
	if err != nil {
		return nil, fmt.Errorf("cohere generation failed: %w", err)
	}

	logModelResponse("DraftContent", response)

	raw, err := ExtractJSONObject(response)
	if err != nil {
		return nil, err
	}

	// Missing individual fields are tolerated (empty values); a shape mismatch
	// on a present field fails the draft as a whole.
	var draft models.ContentDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, &DraftParseError{Reason: "JSON object does not match draft shape: " + err.Error()}
	}

	log.Info().
		Int("draft_length", len(draft.ContentDraft)).
		Int("hashtags", len(draft.HashtagSuggestions)).
		Int("image_instructions", len(draft.ImageInstructions)).
		Msg("Content draft generated")

	return &draft, nil
}

// buildDraftPrompt embeds the profile and campaign fields into a single
// instruction that demands a JSON-only reply with the three draft fields.
func buildDraftPrompt(req models.GenerationRequest) string {
	var context strings.Builder
	if req.Profile.About != "" {
		context.WriteString(fmt.Sprintf("\nAbout the client: %s", req.Profile.About))
	}
	if req.Profile.WebsiteSummary != "" {
		context.WriteString(fmt.Sprintf("\nFrom the client's website: %s", req.Profile.WebsiteSummary))
	}

	return fmt.Sprintf(`Generate LinkedIn %s content for %s, a professional in %s, targeting the %s industry.
Goals: %s%s

Return ONLY this JSON format:
{
    "content_draft": "post text here",
    "hashtag_suggestions": ["#hashtag1", "#hashtag2", "#hashtag3"],
    "image_instructions": ["prompt 1", "prompt 2", "prompt 3"]
}`,
		req.PostType,
		req.Profile.Name,
		req.Profile.Industry,
		req.TargetIndustry,
		req.ContentGoals,
		context.String(),
	)
}
