package pipeline

import (
	"context"
	"testing"

	"github.com/influence-hq/influence/internal/llm"
	"github.com/influence-hq/influence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrafter struct {
	draft *models.ContentDraft
	err   error
}

func (f *fakeDrafter) DraftContent(ctx context.Context, req models.GenerationRequest) (*models.ContentDraft, error) {
	return f.draft, f.err
}

type fakeImages struct {
	urls    []string
	prompts []string
	called  bool
}

func (f *fakeImages) Generate(ctx context.Context, prompts []string) []string {
	f.called = true
	f.prompts = prompts
	return f.urls
}

type fakePublisher struct {
	result models.PublishResult
	got    models.PublishRequest
}

func (f *fakePublisher) Publish(ctx context.Context, req models.PublishRequest) models.PublishResult {
	f.got = req
	return f.result
}

func carouselDraft() *models.ContentDraft {
	return &models.ContentDraft{
		ContentDraft:       "text",
		HashtagSuggestions: []string{"#a"},
		ImageInstructions:  []string{"p1", "p2"},
	}
}

func TestGenerate_CarouselAttachesImageURLs(t *testing.T) {
	images := &fakeImages{urls: []string{"https://img/1.png"}}
	o := NewOrchestrator(&fakeDrafter{draft: carouselDraft()}, images, &fakePublisher{})

	post, err := o.Generate(context.Background(), models.GenerationRequest{PostType: "carousel"})
	require.NoError(t, err)

	assert.Equal(t, carouselDraft(), post.Content)
	assert.Equal(t, []string{"p1", "p2"}, images.prompts)
	assert.Equal(t, []string{"https://img/1.png"}, post.ImageURLs)
}

func TestGenerate_ArticleSkipsImageGeneration(t *testing.T) {
	images := &fakeImages{urls: []string{"https://img/1.png"}}
	o := NewOrchestrator(&fakeDrafter{draft: carouselDraft()}, images, &fakePublisher{})

	post, err := o.Generate(context.Background(), models.GenerationRequest{PostType: "article"})
	require.NoError(t, err)

	assert.False(t, images.called)
	assert.Empty(t, post.ImageURLs)
}

func TestGenerate_CarouselWithoutInstructionsSkipsImages(t *testing.T) {
	images := &fakeImages{}
	draft := &models.ContentDraft{ContentDraft: "text"}
	o := NewOrchestrator(&fakeDrafter{draft: draft}, images, &fakePublisher{})

	post, err := o.Generate(context.Background(), models.GenerationRequest{PostType: "carousel"})
	require.NoError(t, err)

	assert.False(t, images.called)
	assert.Empty(t, post.ImageURLs)
}

func TestGenerate_DraftFailureYieldsNoContent(t *testing.T) {
	images := &fakeImages{}
	o := NewOrchestrator(
		&fakeDrafter{err: &llm.DraftParseError{Reason: "no JSON object in model response"}},
		images, &fakePublisher{},
	)

	post, err := o.Generate(context.Background(), models.GenerationRequest{PostType: "carousel"})

	assert.Nil(t, post, "no partial content on drafting failure")
	require.Error(t, err)
	assert.False(t, images.called, "image generation must not run without a draft")
}

func TestGenerate_EmptyImageResultIsValid(t *testing.T) {
	o := NewOrchestrator(&fakeDrafter{draft: carouselDraft()}, &fakeImages{urls: nil}, &fakePublisher{})

	post, err := o.Generate(context.Background(), models.GenerationRequest{PostType: "carousel"})
	require.NoError(t, err)
	assert.Empty(t, post.ImageURLs, "caller falls back to a text-only post")
}

func TestPublish_PassesThrough(t *testing.T) {
	pub := &fakePublisher{result: models.PublishResult{Success: true, PostID: "urn:li:share:9", ImagesUploaded: 2}}
	o := NewOrchestrator(&fakeDrafter{}, &fakeImages{}, pub)

	req := models.PublishRequest{
		Content:     models.ContentDraft{ContentDraft: "text"},
		ImageURLs:   []string{"https://img/1.png"},
		PostType:    "carousel",
		AuthorURN:   "abc",
		AccessToken: "tok",
	}
	result := o.Publish(context.Background(), req)

	assert.Equal(t, pub.result, result)
	assert.Equal(t, req, pub.got, "publish state comes entirely from the caller")
}
