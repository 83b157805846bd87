package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// GetProfile handles GET /v1/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileService.Latest(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load profile")
		writeJSONError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if p == nil {
		writeJSONError(w, http.StatusNotFound, "no profile stored; refresh first")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RefreshProfile handles POST /v1/profile/refresh. An optional bearer token
// lets the refresh consult the LinkedIn userinfo endpoint.
func (h *Handler) RefreshProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileService.Refresh(r.Context(), bearerToken(r))
	if err != nil {
		log.Error().Err(err).Msg("Profile refresh failed")
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// bearerToken extracts a bearer token from the Authorization header, if any.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
