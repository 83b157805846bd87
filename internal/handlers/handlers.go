package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/influence-hq/influence/internal/auth"
	"github.com/influence-hq/influence/internal/database"
	"github.com/influence-hq/influence/internal/linkedin"
	"github.com/influence-hq/influence/internal/pipeline"
	"github.com/influence-hq/influence/internal/profile"
	"github.com/rs/zerolog/log"
)

// Handler contains all HTTP handlers
type Handler struct {
	authService    *auth.Service
	profileService *profile.Service
	orchestrator   *pipeline.Orchestrator
	linkedin       *linkedin.Client
	db             *database.DB
}

// NewHandler creates a new handler
func NewHandler(
	authService *auth.Service,
	profileService *profile.Service,
	orchestrator *pipeline.Orchestrator,
	linkedinClient *linkedin.Client,
	db *database.DB,
) *Handler {
	return &Handler{
		authService:    authService,
		profileService: profileService,
		orchestrator:   orchestrator,
		linkedin:       linkedinClient,
		db:             db,
	}
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
