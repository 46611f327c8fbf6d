package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/db"
)

// Migrate creates the catalog tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
