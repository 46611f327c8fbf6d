package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Project struct {
	ID         string
	Name       string
	ApiKeyHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  pgtype.Timestamptz
}

type ProjectTable struct {
	ID        uuid.UUID
	ProjectID string
	Name      string
	SchemaKey string
	Columns   []byte
	CreatedAt time.Time
}
