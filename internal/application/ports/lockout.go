package ports

import "context"

// LockoutStore tracks failed attempts per key (client IP for the admin API) and reports a cooldown once too many accumulate.
type LockoutStore interface {
	IsLocked(ctx context.Context, key string) (locked bool, retryAfterSeconds int)
	RecordFailure(ctx context.Context, key string)
	RecordSuccess(ctx context.Context, key string)
}
