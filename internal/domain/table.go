package domain

import (
	"time"

	"github.com/google/uuid"
)

// Column is a single column of a project table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is a project-scoped table. SchemaKey is the physical table name.
type Table struct {
	ID        uuid.UUID
	ProjectID ProjectID
	Name      string
	SchemaKey string
	Columns   []Column
	CreatedAt time.Time
}
