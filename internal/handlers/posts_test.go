package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/influence-hq/influence/internal/llm"
	"github.com/influence-hq/influence/internal/models"
	"github.com/influence-hq/influence/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDrafter struct {
	draft *models.ContentDraft
	err   error
}

func (s *stubDrafter) DraftContent(ctx context.Context, req models.GenerationRequest) (*models.ContentDraft, error) {
	return s.draft, s.err
}

type stubImages struct{ urls []string }

func (s *stubImages) Generate(ctx context.Context, prompts []string) []string { return s.urls }

type stubPublisher struct{ result models.PublishResult }

func (s *stubPublisher) Publish(ctx context.Context, req models.PublishRequest) models.PublishResult {
	return s.result
}

func newTestHandler(d pipeline.ContentDrafter, i pipeline.ImageGenerator, p pipeline.PostPublisher) *Handler {
	return NewHandler(nil, nil, pipeline.NewOrchestrator(d, i, p), nil, nil)
}

func TestGeneratePost(t *testing.T) {
	draft := &models.ContentDraft{
		ContentDraft:       "hello",
		HashtagSuggestions: []string{"#x"},
		ImageInstructions:  []string{"a"},
	}
	h := newTestHandler(&stubDrafter{draft: draft}, &stubImages{urls: []string{"https://img/1.png"}}, &stubPublisher{})

	body := `{"profile":{"name":"John"},"post_type":"carousel","target_industry":"Tech","content_goals":"launch"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.GeneratePost(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.GeneratedPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, draft, got.Content)
	assert.Equal(t, []string{"https://img/1.png"}, got.ImageURLs)
}

func TestGeneratePost_DraftParseFailure(t *testing.T) {
	h := newTestHandler(
		&stubDrafter{err: &llm.DraftParseError{Reason: "no JSON object in model response"}},
		&stubImages{}, &stubPublisher{},
	)

	body := `{"profile":{"name":"John"},"post_type":"article"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.GeneratePost(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "draft parse failed")
}

func TestGeneratePost_Validation(t *testing.T) {
	h := newTestHandler(&stubDrafter{}, &stubImages{}, &stubPublisher{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{`},
		{"missing post_type", `{"profile":{"name":"John"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/posts/generate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.GeneratePost(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPublishPost(t *testing.T) {
	h := newTestHandler(&stubDrafter{}, &stubImages{}, &stubPublisher{
		result: models.PublishResult{Success: true, PostID: "urn:li:share:1", ImagesUploaded: 1},
	})

	body := `{"content":{"content_draft":"hello"},"post_type":"carousel","author_urn":"abc","access_token":"tok","image_urls":["https://img/1.png"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/publish", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PublishPost(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var result models.PublishResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "urn:li:share:1", result.PostID)
}

func TestPublishPost_ProviderRejection(t *testing.T) {
	h := newTestHandler(&stubDrafter{}, &stubImages{}, &stubPublisher{
		result: models.PublishResult{Error: "duplicate post"},
	})

	body := `{"content":{"content_draft":"hello"},"post_type":"article","author_urn":"abc","access_token":"tok"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/publish", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PublishPost(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate post")
}

func TestPublishPost_Validation(t *testing.T) {
	h := newTestHandler(&stubDrafter{}, &stubImages{}, &stubPublisher{})

	tests := []struct {
		name string
		body string
	}{
		{"missing credentials", `{"content":{"content_draft":"hello"},"post_type":"article"}`},
		{"missing draft text", `{"post_type":"article","author_urn":"abc","access_token":"tok"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/posts/publish", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.PublishPost(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
