package http

import (
	"net/http"

	"github.com/MKhiriev/go-dash-sync/internal/app"
	"github.com/MKhiriev/go-dash-sync/internal/logger"
	"github.com/MKhiriev/go-dash-sync/internal/utils"
	"github.com/MKhiriev/go-dash-sync/models"
	"github.com/go-chi/chi/v5"
)

// getClient answers the transport bootstrap: 204 for a registered client id,
// 404 otherwise.
func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if !h.services.AuthService.IsClientAllowed(r.Context(), clientID) {
		logger.FromRequest(r).Warn().Str("client_id", clientID).Msg("unknown client")
		writeError(w, http.StatusNotFound, app.MsgUnknownClient)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.User
	if !decodeBody(w, r, &user, authBodyLimit) {
		log.Warn().Msg("invalid registration body")
		return
	}

	registered, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user registration failed")
		writeServiceError(w, err)
		return
	}

	log.Info().Str("login", registered.Login).Msg("user registered")
	utils.WriteJSON(w, registered, http.StatusCreated)
}

// token implements the password and refresh_token grants.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if !decodeBody(w, r, &req, authBodyLimit) {
		log.Warn().Msg("invalid token request body")
		return
	}

	tokens, err := h.services.AuthService.IssueTokens(r.Context(), req)
	if err != nil {
		log.Err(err).Str("grant_type", req.GrantType).Str("client_id", req.ClientID).Msg("token request rejected")
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, tokens, http.StatusOK)
}
