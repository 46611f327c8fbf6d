package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const projectColumns = `id, name, api_key_hash, created_at, updated_at, deleted_at`

const createProject = `INSERT INTO projects (id, name, api_key_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + projectColumns

type CreateProjectParams struct {
	ID         string
	Name       string
	ApiKeyHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject, arg.ID, arg.Name, arg.ApiKeyHash, arg.CreatedAt, arg.UpdatedAt)
	return scanProject(row)
}

const getProjectByID = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

func (q *Queries) GetProjectByID(ctx context.Context, id string) (Project, error) {
	return scanProject(q.db.QueryRow(ctx, getProjectByID, id))
}

const getProjectByAPIKeyHash = `SELECT ` + projectColumns + ` FROM projects WHERE api_key_hash = $1 AND deleted_at IS NULL`

func (q *Queries) GetProjectByAPIKeyHash(ctx context.Context, apiKeyHash string) (Project, error) {
	return scanProject(q.db.QueryRow(ctx, getProjectByAPIKeyHash, apiKeyHash))
}

const listProjects = `SELECT ` + projectColumns + ` FROM projects WHERE deleted_at IS NULL
ORDER BY created_at, id LIMIT $1 OFFSET $2`

type ListProjectsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]Project, error) {
	return q.queryProjects(ctx, listProjects, arg.Limit, arg.Offset)
}

const listProjectsDeletedBefore = `SELECT ` + projectColumns + ` FROM projects
WHERE deleted_at IS NOT NULL AND deleted_at < $1 ORDER BY deleted_at`

func (q *Queries) ListProjectsDeletedBefore(ctx context.Context, before time.Time) ([]Project, error) {
	return q.queryProjects(ctx, listProjectsDeletedBefore, before)
}

const updateProjectAPIKeyHash = `UPDATE projects SET api_key_hash = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

func (q *Queries) UpdateProjectAPIKeyHash(ctx context.Context, id, apiKeyHash string) (int64, error) {
	tag, err := q.db.Exec(ctx, updateProjectAPIKeyHash, id, apiKeyHash)
	return tag.RowsAffected(), err
}

const softDeleteProject = `UPDATE projects SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`

func (q *Queries) SoftDeleteProject(ctx context.Context, id string, at time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, softDeleteProject, id, at)
	return tag.RowsAffected(), err
}

const deleteProject = `DELETE FROM projects WHERE id = $1`

func (q *Queries) DeleteProject(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteProject, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var deletedAt pgtype.Timestamptz
	err := row.Scan(&p.ID, &p.Name, &p.ApiKeyHash, &p.CreatedAt, &p.UpdatedAt, &deletedAt)
	p.DeletedAt = deletedAt
	return p, err
}

func (q *Queries) queryProjects(ctx context.Context, sql string, args ...interface{}) ([]Project, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
