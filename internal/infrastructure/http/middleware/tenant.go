package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

// ProjectKeyHeader carries a project API key.
const ProjectKeyHeader = "X-Projectdb-Project-Key"

// HashAPIKeyFunc hashes an API key for storage/lookup (SHA256).
type HashAPIKeyFunc func(string) string

// SHA256HashAPIKey returns a function that SHA256-hashes the key (hex).
func SHA256HashAPIKey() HashAPIKeyFunc {
	return func(key string) string {
		h := sha256.Sum256([]byte(key))
		return hex.EncodeToString(h[:])
	}
}

// TenantResolver resolves the project from X-Projectdb-Project-Key or Authorization: Bearer <key|token>
// and sets it in context. Bearer values that look like JWTs are validated with tokens when it is non-nil.
type TenantResolver struct {
	projects   ports.ProjectRepository
	hashAPIKey HashAPIKeyFunc
	tokens     ports.TokenIssuer
}

func NewTenantResolver(projects ports.ProjectRepository, hashAPIKey HashAPIKeyFunc, tokens ports.TokenIssuer) *TenantResolver {
	if hashAPIKey == nil {
		hashAPIKey = SHA256HashAPIKey()
	}
	return &TenantResolver{projects: projects, hashAPIKey: hashAPIKey, tokens: tokens}
}

// APIKeyOnly rejects project tokens; used where a token must not mint another token.
func (m *TenantResolver) APIKeyOnly(next http.Handler) http.Handler {
	return m.handler(next, false)
}

func (m *TenantResolver) Handler(next http.Handler) http.Handler {
	return m.handler(next, true)
}

func (m *TenantResolver) handler(next http.Handler, allowTokens bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(ProjectKeyHeader)
		bearer := false
		if key == "" {
			if auth := r.Header.Get("Authorization"); len(auth) >= 7 && auth[:7] == "Bearer " {
				key = auth[7:]
				bearer = true
			}
		}
		if key == "" {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "missing project key")
			return
		}
		var (
			project *domain.Project
			err     error
		)
		if bearer && isJWT(key) {
			if !allowTokens || m.tokens == nil {
				writeErr(w, http.StatusUnauthorized, "unauthorized", "project tokens are not accepted here")
				return
			}
			projectID, verr := m.tokens.ValidateProjectToken(key)
			if verr != nil {
				writeErr(w, http.StatusUnauthorized, "invalid_token", "invalid or expired project token")
				return
			}
			project, err = m.projects.GetByID(r.Context(), domain.ProjectID(projectID))
			if project != nil && project.Deleted() {
				project = nil
			}
		} else {
			project, err = m.projects.GetByAPIKeyHash(r.Context(), m.hashAPIKey(key))
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if project == nil {
			writeErr(w, http.StatusUnauthorized, "unauthorized", domerrors.ErrTenantNotFound.Error())
			return
		}
		ctx := WithProject(r.Context(), project)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isJWT reports whether s has the three dot-separated segments of a compact JWS. API keys never contain dots.
func isJWT(s string) bool {
	return strings.Count(s, ".") == 2
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	if errCode == "" {
		errCode = "internal_error"
		if code == http.StatusUnauthorized {
			errCode = "unauthorized"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
