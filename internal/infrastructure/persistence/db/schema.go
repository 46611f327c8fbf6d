package db

// Schema creates the catalog tables. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
	id           TEXT PRIMARY KEY CHECK (id ~ '^p_[A-Za-z0-9_-]{12}$'),
	name         TEXT NOT NULL,
	api_key_hash TEXT NOT NULL UNIQUE,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	deleted_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS project_tables (
	id         UUID PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	schema_key TEXT NOT NULL UNIQUE,
	columns    JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (project_id, name)
);

CREATE INDEX IF NOT EXISTS projects_deleted_at_idx ON projects (deleted_at) WHERE deleted_at IS NOT NULL;
`
