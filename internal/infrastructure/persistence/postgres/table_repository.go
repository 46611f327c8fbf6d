package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/db"
)

const (
	pgUniqueViolation = "23505"
	pgDuplicateTable  = "42P07"
)

// TableRepository creates physical tables named by their schema key and keeps the catalog in project_tables.
// DDL and catalog writes share a transaction.
type TableRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewTableRepository(q *db.Queries, pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{q: q, pool: pool}
}

func (r *TableRepository) inTx(ctx context.Context, fn func(pgx.Tx, *db.Queries) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(tx, r.q.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TableRepository) Create(ctx context.Context, table *domain.Table) error {
	cols, err := json.Marshal(table.Columns)
	if err != nil {
		return err
	}
	err = r.inTx(ctx, func(tx pgx.Tx, q *db.Queries) error {
		if err := q.CreateProjectTable(ctx, db.CreateProjectTableParams{
			ID:        table.ID,
			ProjectID: table.ProjectID.String(),
			Name:      table.Name,
			SchemaKey: table.SchemaKey,
			Columns:   cols,
			CreatedAt: table.CreatedAt,
		}); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, CreateTableSQL(table.SchemaKey, table.Columns))
		return err
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgDuplicateTable) {
		return domerrors.ErrTableExists
	}
	return err
}

func (r *TableRepository) Get(ctx context.Context, projectID domain.ProjectID, name string) (*domain.Table, error) {
	t, err := r.q.GetProjectTable(ctx, projectID.String(), name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbTableToDomain(t)
}

func (r *TableRepository) List(ctx context.Context, projectID domain.ProjectID) ([]*domain.Table, error) {
	list, err := r.q.ListProjectTables(ctx, projectID.String())
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Table, 0, len(list))
	for _, t := range list {
		d, err := dbTableToDomain(t)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *TableRepository) Drop(ctx context.Context, projectID domain.ProjectID, name string) error {
	return r.inTx(ctx, func(tx pgx.Tx, q *db.Queries) error {
		n, err := q.DeleteProjectTable(ctx, projectID.String(), name)
		if err != nil {
			return err
		}
		if n == 0 {
			return domerrors.ErrTableNotFound
		}
		_, err = tx.Exec(ctx, DropTableSQL(projectID.SchemaKey(name)))
		return err
	})
}

// CreateTableSQL renders the DDL for a project table. Column names and types must already be normalized.
func CreateTableSQL(schemaKey string, cols []domain.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (id UUID PRIMARY KEY DEFAULT gen_random_uuid()", pgx.Identifier{schemaKey}.Sanitize())
	for _, c := range cols {
		fmt.Fprintf(&b, ", %s %s", pgx.Identifier{c.Name}.Sanitize(), strings.ToUpper(c.Type))
	}
	b.WriteString(", created_at TIMESTAMPTZ NOT NULL DEFAULT NOW())")
	return b.String()
}

// DropTableSQL renders the DDL that removes a project table.
func DropTableSQL(schemaKey string) string {
	return "DROP TABLE IF EXISTS " + pgx.Identifier{schemaKey}.Sanitize()
}

func dbTableToDomain(t db.ProjectTable) (*domain.Table, error) {
	var cols []domain.Column
	if len(t.Columns) > 0 {
		if err := json.Unmarshal(t.Columns, &cols); err != nil {
			return nil, fmt.Errorf("decode columns of %s: %w", t.SchemaKey, err)
		}
	}
	return &domain.Table{
		ID:        t.ID,
		ProjectID: domain.ProjectID(t.ProjectID),
		Name:      t.Name,
		SchemaKey: t.SchemaKey,
		Columns:   cols,
		CreatedAt: t.CreatedAt,
	}, nil
}

var _ ports.TableRepository = (*TableRepository)(nil)
