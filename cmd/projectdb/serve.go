package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/application/project"
	"github.com/amirhosseinghanipour/projectdb/internal/application/retention"
	"github.com/amirhosseinghanipour/projectdb/internal/application/table"
	"github.com/amirhosseinghanipour/projectdb/internal/config"
	infraauth "github.com/amirhosseinghanipour/projectdb/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/webhook"
)

const purgeInterval = time.Hour

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, newLogger())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Admin.Secret == "" {
		log.Warn().Msg("ADMIN_SECRET not set; /admin routes will reject every request")
	}

	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var asynqWorker *queue.Worker
	if a.asynqOpt != nil {
		asynqWorker = queue.NewWorker(*a.asynqOpt, newEmitter(cfg), log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else if cfg.Webhook.URL != "" {
		log.Warn().Msg("WEBHOOK_URL set without redis; webhooks are disabled")
	}

	privateKey, err := loadSigningKey(cfg, log)
	if err != nil {
		return err
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	hashAPIKey := middleware.SHA256HashAPIKey()
	adminHandler := handlers.NewAdminHandler(handlers.AdminUseCases{
		Create: project.NewCreateProject(a.projects, a.tasks, hashAPIKey),
		Rotate: project.NewRotateProjectKey(a.projects, a.tasks, hashAPIKey),
		Get:    project.NewGetProject(a.projects),
		List:   project.NewListProjects(a.projects),
		Delete: project.NewDeleteProject(a.projects, a.tasks),
	}, log)
	tablesHandler := handlers.NewTablesHandler(
		table.NewCreateTable(a.tables, a.tasks),
		table.NewListTables(a.tables),
		table.NewGetTable(a.tables),
		table.NewDropTable(a.tables, a.tasks),
		log,
	)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP, a.redis)
	if err != nil {
		return err
	}
	projectLimit, err := middleware.NewProjectRateLimiter(cfg.RateLimit.RatePerProject, a.redis)
	if err != nil {
		return err
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(a.pool, a.redis),
		AdminHandler:     adminHandler,
		TablesHandler:    tablesHandler,
		TokenHandler:     handlers.NewTokenHandler(issuer, time.Duration(cfg.JWT.TokenExpiry)*time.Second, log),
		Tenant:           middleware.NewTenantResolver(a.projects, hashAPIKey, issuer),
		RequireAdmin:     middleware.RequireAdminSecretWithLockout(cfg.Admin.Secret, lockout.NewMemoryStore(cfg.Admin.LockoutMaxAttempts, cfg.Admin.LockoutCooldownSeconds)),
		Log:              log,
		Secure:           middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:             middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:      ipLimit,
		ProjectRateLimit: projectLimit,
		Metrics:          true,
	})

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Retention.PurgeAfterDays > 0 {
		go purgeLoop(runCtx, a.projects, a.tables, a.tasks, cfg.Retention.PurgeAfterDays, log)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-runCtx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
	return nil
}

func newEmitter(cfg *config.Config) ports.WebhookEmitter {
	if cfg.Webhook.URL == "" {
		return webhook.NewNoopEmitter()
	}
	var opts []webhook.HTTPEmitterOption
	if cfg.Webhook.Secret != "" {
		opts = append(opts, webhook.WithSecret(cfg.Webhook.Secret))
	}
	return webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
}

// loadSigningKey reads JWT_PRIVATE_KEY_PATH, or generates a key that lives only as long as the process.
func loadSigningKey(cfg *config.Config, log zerolog.Logger) (*rsa.PrivateKey, error) {
	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		return nil, err
	}
	if pemBytes == nil {
		log.Warn().Msg("JWT_PRIVATE_KEY_PATH not set; project tokens will not survive a restart")
		return infraauth.GenerateEphemeralKey()
	}
	return infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
}

func purgeLoop(ctx context.Context, projects ports.ProjectRepository, tables ports.TableRepository, tasks ports.TaskEnqueuer, days int, log zerolog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := retention.RunPurgeDeletedProjects(ctx, projects, tables, tasks, days)
			if err != nil {
				log.Error().Err(err).Msg("purge deleted projects")
				continue
			}
			if n > 0 {
				log.Info().Int("purged", n).Msg("purged deleted projects")
			}
		}
	}
}
