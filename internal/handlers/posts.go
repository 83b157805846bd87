package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/influence-hq/influence/internal/llm"
	"github.com/influence-hq/influence/internal/models"
	"github.com/rs/zerolog/log"
)

// GeneratePost handles POST /v1/posts/generate. When the request carries no
// profile, the most recently stored one is used.
func (h *Handler) GeneratePost(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PostType == "" {
		writeJSONError(w, http.StatusBadRequest, "post_type is required")
		return
	}

	if req.Profile.Name == "" {
		stored, err := h.profileService.Latest(r.Context())
		if err != nil || stored == nil {
			writeJSONError(w, http.StatusBadRequest, "no profile in request and none stored")
			return
		}
		req.Profile = *stored
	}

	post, err := h.orchestrator.Generate(r.Context(), req)
	if err != nil {
		var parseErr *llm.DraftParseError
		if errors.As(err, &parseErr) {
			// No usable content; the caller gets an explicit empty outcome
			// rather than a half-parsed draft.
			writeJSONError(w, http.StatusUnprocessableEntity, parseErr.Error())
			return
		}
		log.Error().Err(err).Msg("Generation failed")
		writeJSONError(w, http.StatusBadGateway, "content generation failed")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// PublishPost handles POST /v1/posts/publish
func (h *Handler) PublishPost(w http.ResponseWriter, r *http.Request) {
	var req models.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccessToken == "" || req.AuthorURN == "" {
		writeJSONError(w, http.StatusBadRequest, "access_token and author_urn are required")
		return
	}
	if req.Content.ContentDraft == "" {
		writeJSONError(w, http.StatusBadRequest, "content.content_draft is required")
		return
	}

	result := h.orchestrator.Publish(r.Context(), req)

	// Submission failures are a structured result, not a transport error;
	// surface them with a 502 so callers can distinguish provider rejection.
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, result)
}
