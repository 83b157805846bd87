package pipeline

import (
	"context"
	"strings"

	"github.com/influence-hq/influence/internal/models"
	"github.com/rs/zerolog/log"
)

// ContentDrafter produces a structured draft from a generation request.
type ContentDrafter interface {
	DraftContent(ctx context.Context, req models.GenerationRequest) (*models.ContentDraft, error)
}

// ImageGenerator resolves visual prompts to image URLs, best effort.
type ImageGenerator interface {
	Generate(ctx context.Context, prompts []string) []string
}

// PostPublisher uploads assets and submits the final post.
type PostPublisher interface {
	Publish(ctx context.Context, req models.PublishRequest) models.PublishResult
}

// Orchestrator composes drafting, image provisioning and publishing into the
// two-phase flow. The phases share no state: everything Publish needs is
// passed explicitly by the caller, so a reviewer can edit the draft between
// the calls and either phase can be re-run on its own.
type Orchestrator struct {
	drafter   ContentDrafter
	images    ImageGenerator
	publisher PostPublisher
}

// NewOrchestrator creates a new pipeline orchestrator
func NewOrchestrator(drafter ContentDrafter, images ImageGenerator, publisher PostPublisher) *Orchestrator {
	return &Orchestrator{
		drafter:   drafter,
		images:    images,
		publisher: publisher,
	}
}

// Generate runs the drafting phase. A drafting failure yields no content at
// all; the caller must not proceed to publish. For carousel posts the
// draft's image instructions are resolved to URLs. An empty result is valid;
// the post then degrades to text-only at publish time.
func (o *Orchestrator) Generate(ctx context.Context, req models.GenerationRequest) (*models.GeneratedPost, error) {
	content, err := o.drafter.DraftContent(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("post_type", req.PostType).Msg("Content drafting failed")
		return nil, err
	}

	post := &models.GeneratedPost{Content: content}
	if strings.EqualFold(req.PostType, models.PostTypeCarousel) && len(content.ImageInstructions) > 0 {
		post.ImageURLs = o.images.Generate(ctx, content.ImageInstructions)
	}

	log.Info().
		Str("post_type", req.PostType).
		Int("image_urls", len(post.ImageURLs)).
		Msg("Generation phase complete")

	return post, nil
}

// Publish runs the publish phase. It is a pass-through; the split exists
// so generated content can be reviewed before anything goes out.
func (o *Orchestrator) Publish(ctx context.Context, req models.PublishRequest) models.PublishResult {
	return o.publisher.Publish(ctx, req)
}
