package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
)

// APIVersion is sent as X-API-Version on every response.
const APIVersion = "1"

type RouterConfig struct {
	HealthHandler    *handlers.HealthHandler
	AdminHandler     *handlers.AdminHandler
	TablesHandler    *handlers.TablesHandler
	TokenHandler     *handlers.TokenHandler
	Tenant           *middleware.TenantResolver
	RequireAdmin     func(http.Handler) http.Handler // X-Projectdb-Admin-Secret for /admin/*
	Log              zerolog.Logger
	Secure           func(http.Handler) http.Handler
	CORS             func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler
	ProjectRateLimit func(http.Handler) http.Handler
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(middleware.PeerAddr)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	r.Use(middleware.APIVersion(APIVersion))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/ids", func(r chi.Router) {
		r.Get("/validate", handlers.ValidateID)
		r.Get("/schema-key", handlers.SchemaKey)
	})

	if cfg.Tenant != nil {
		if cfg.TokenHandler != nil {
			r.With(cfg.Tenant.APIKeyOnly).Post("/token", cfg.TokenHandler.Issue)
		}
		if cfg.TablesHandler != nil {
			r.Route("/tables", func(r chi.Router) {
				r.Use(cfg.Tenant.Handler)
				if cfg.ProjectRateLimit != nil {
					r.Use(cfg.ProjectRateLimit)
				}
				r.Get("/", cfg.TablesHandler.List)
				r.Post("/", cfg.TablesHandler.Create)
				r.Get("/{name}", cfg.TablesHandler.Get)
				r.Delete("/{name}", cfg.TablesHandler.Drop)
			})
		}
	}

	if cfg.AdminHandler != nil && cfg.RequireAdmin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAdmin)
			r.Post("/projects", cfg.AdminHandler.CreateProject)
			r.Get("/projects", cfg.AdminHandler.ListProjects)
			r.Get("/projects/{id}", cfg.AdminHandler.GetProject)
			r.Delete("/projects/{id}", cfg.AdminHandler.DeleteProject)
			r.Post("/projects/{id}/rotate-key", cfg.AdminHandler.RotateProjectKey)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Msg("request")
		})
	}
}
