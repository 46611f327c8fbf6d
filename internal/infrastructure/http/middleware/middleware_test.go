package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/memory"
)

type stubTokens struct {
	projectID string
	err       error
}

func (s stubTokens) IssueProjectToken(projectID string, ttl time.Duration) (string, error) {
	return "a.b.c", nil
}

func (s stubTokens) ValidateProjectToken(tokenString string) (string, error) {
	return s.projectID, s.err
}

func okHandler(t *testing.T, want domain.ProjectID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := ProjectFromContext(r.Context())
		require.NotNil(t, p)
		assert.Equal(t, want, p.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func seedProject(t *testing.T) (*memory.ProjectRepository, *domain.Project) {
	t.Helper()
	repo := memory.NewProjectRepository()
	p := &domain.Project{ID: "p_a1b2c3d4e5f6", Name: "blog", APIKeyHash: SHA256HashAPIKey()("pdb_key"), CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), p))
	return repo, p
}

func TestTenantResolver_APIKey(t *testing.T) {
	repo, p := seedProject(t)
	h := NewTenantResolver(repo, nil, nil).Handler(okHandler(t, p.ID))

	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set(ProjectKeyHeader, "pdb_key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set("Authorization", "Bearer pdb_key")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTenantResolver_Rejects(t *testing.T) {
	repo, _ := seedProject(t)
	h := NewTenantResolver(repo, nil, nil).Handler(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing project key","code":"unauthorized"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set(ProjectKeyHeader, "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set("Authorization", "Bearer x.y.z")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "tokens rejected when no issuer is configured")
}

func TestTenantResolver_ProjectToken(t *testing.T) {
	repo, p := seedProject(t)

	h := NewTenantResolver(repo, nil, stubTokens{projectID: p.ID.String()}).Handler(okHandler(t, p.ID))
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set("Authorization", "Bearer a.b.c")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	bad := NewTenantResolver(repo, nil, stubTokens{err: errors.New("expired")}).Handler(http.NotFoundHandler())
	rec = httptest.NewRecorder()
	bad.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")

	keyOnly := NewTenantResolver(repo, nil, stubTokens{projectID: p.ID.String()}).APIKeyOnly(http.NotFoundHandler())
	rec = httptest.NewRecorder()
	keyOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.NoError(t, repo.SoftDelete(context.Background(), p.ID, time.Now()))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "deleted project")
}

func TestRequireAdminSecret(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	RequireAdminSecret("")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/projects", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.Header.Set(AdminSecretHeader, "nope")
	rec = httptest.NewRecorder()
	RequireAdminSecret("shh")(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set(AdminSecretHeader, "shh")
	rec = httptest.NewRecorder()
	RequireAdminSecret("shh")(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdminSecretWithLockout(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireAdminSecretWithLockout("shh", lockout.NewMemoryStore(2, 60))(next)

	try := func(secret, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
		req.RemoteAddr = remote
		req.Header.Set(AdminSecretHeader, secret)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, try("nope", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusUnauthorized, try("nope", "10.0.0.1:1235").Code)
	rec := try("shh", "10.0.0.1:1236")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "locked even with the right secret")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, try("shh", "10.0.0.2:1234").Code)
}

func TestProjectRateLimiter(t *testing.T) {
	limit, err := NewProjectRateLimiter("2-M", nil)
	require.NoError(t, err)
	h := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	ctx := WithProject(context.Background(), &domain.Project{ID: "p_a1b2c3d4e5f6"})
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil).WithContext(ctx))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewProjectRateLimiter("garbage", nil)
	assert.Error(t, err)
}

func TestCORSAndAPIVersion(t *testing.T) {
	h := APIVersion("1")(CORS([]string{"https://app.example"}, nil, nil)(http.NotFoundHandler()))
	req := httptest.NewRequest(http.MethodOptions, "/tables", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), ProjectKeyHeader)
	assert.Equal(t, "1", rec.Header().Get("X-API-Version"))
}

func TestPeerIPSurvivesRealIP(t *testing.T) {
	var peer, client string
	h := PeerAddr(chimid.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		peer, client = PeerIP(r), ClientIP(r)
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:40000"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.7", peer)
	assert.Equal(t, "10.0.0.1", client)

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "192.0.2.9:1"
	assert.Equal(t, "192.0.2.9", PeerIP(bare))
}
