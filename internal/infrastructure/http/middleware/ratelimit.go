package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// newStore returns a Redis-backed store shared across instances, or an in-memory store when client is nil.
func newStore(client *redis.Client, prefix string) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
}

// NewIPRateLimiter returns middleware that limits by client IP.
// rateFormatted: "100-M", "1000-H", "50-S". Empty disables.
func NewIPRateLimiter(rateFormatted string, client *redis.Client) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	store, err := newStore(client, "projectdb_ip")
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance).Handler, nil
}

// NewProjectRateLimiter returns middleware that limits by project ID from context.
// Use after TenantResolver. rateFormatted: "200-M", etc.
func NewProjectRateLimiter(rateFormatted string, client *redis.Client) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	store, err := newStore(client, "projectdb_project")
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	return projectLimitMiddleware(instance), nil
}

func projectLimitMiddleware(instance *limiter.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			project := ProjectFromContext(r.Context())
			if project == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := "project:" + project.ID.String()
			ctx, err := instance.Increment(r.Context(), key, 1)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			if ctx.Reset > 0 {
				w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", ctx.Reset))
			}
			if ctx.Reached {
				writeErr(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
