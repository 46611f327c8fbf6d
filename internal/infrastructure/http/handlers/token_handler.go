package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
)

// TokenHandler exchanges a project API key for a short-lived project access token.
type TokenHandler struct {
	issuer ports.TokenIssuer
	ttl    time.Duration
	log    zerolog.Logger
}

func NewTokenHandler(issuer ports.TokenIssuer, ttl time.Duration, log zerolog.Logger) *TokenHandler {
	return &TokenHandler{issuer: issuer, ttl: ttl, log: log}
}

// Issue handles POST /token. Returns { "access_token", "token_type", "expires_in" }.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	tok, err := h.issuer.IssueProjectToken(p.ID.String(), h.ttl)
	if err != nil {
		h.log.Error().Err(err).Str("project_id", p.ID.String()).Msg("issue project token failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, ports.EventProjectToken, p.ID.String(), "", true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": tok,
		"token_type":   "Bearer",
		"expires_in":   int64(h.ttl.Seconds()),
	})
}
