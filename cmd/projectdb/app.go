package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/config"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/cache"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/db"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/queue"
)

// app holds the storage, cache and queue backends shared by serve and purge.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	pool  *pgxpool.Pool
	redis *redis.Client
	// asynqOpt is nil when Redis is not configured.
	asynqOpt *asynq.RedisClientOpt

	projects ports.ProjectRepository
	tables   ports.TableRepository
	tasks    ports.TaskEnqueuer

	closers []func()
}

func openApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			a.Close()
			return nil, err
		}
		a.pool = pool
		q := db.New(pool)
		a.projects = postgres.NewProjectRepository(q)
		a.tables = postgres.NewTableRepository(q, pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set; using in-memory repositories")
		a.projects = memory.NewProjectRepository()
		a.tables = memory.NewTableRepository()
	}

	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			_ = client.Close()
		} else {
			a.redis = client
			a.closers = append(a.closers, func() { _ = client.Close() })
			a.asynqOpt = &asynq.RedisClientOpt{Addr: opt.Addr, Password: opt.Password, DB: opt.DB}
		}
	}

	var projectCache ports.ProjectCache = cache.NewNoopProjectCache()
	if a.redis != nil {
		projectCache = cache.NewRedisProjectCache(a.redis, cfg.Redis.CacheTTL)
		enq := queue.NewAsynqEnqueuer(*a.asynqOpt, log)
		a.closers = append(a.closers, func() { _ = enq.Close() })
		a.tasks = enq
	} else {
		a.tasks = queue.NewNoopEnqueuer()
	}
	a.projects = cache.NewCachedProjectRepository(a.projects, projectCache, log)
	return a, nil
}

// Close releases backends in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
