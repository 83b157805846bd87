package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OAuthAuthorize handles GET /oauth/authorize: redirects the browser to the
// LinkedIn consent page.
func (h *Handler) OAuthAuthorize(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = uuid.New().String()
	}
	http.Redirect(w, r, h.linkedin.AuthorizeURL(state), http.StatusFound)
}

// OAuthCallback handles GET /oauth/callback: exchanges the authorization
// code for a bearer token and returns it to the caller.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		log.Warn().
			Str("error", errCode).
			Str("description", q.Get("error_description")).
			Msg("OAuth consent denied")
		writeJSONError(w, http.StatusBadRequest, "authorization failed: "+errCode)
		return
	}

	code := q.Get("code")
	if code == "" {
		writeJSONError(w, http.StatusBadRequest, "no authorization code received")
		return
	}

	token, err := h.linkedin.ExchangeCode(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("OAuth code exchange failed")
		writeJSONError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	writeJSON(w, http.StatusOK, token)
}
