package domain

import (
	"time"

	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
	"github.com/amirhosseinghanipour/projectdb/internal/domain/ident"
)

// ProjectID is a value object for tenant/project identity ("p_" + 12 URL-safe chars).
type ProjectID string

// NewProjectID generates a fresh ProjectID.
func NewProjectID() ProjectID { return ProjectID(ident.NewProjectID()) }

// ParseProjectID returns s as a ProjectID, or ErrInvalidProjectID.
func ParseProjectID(s string) (ProjectID, error) {
	if !ident.IsValidProjectID(s) {
		return "", domerrors.ErrInvalidProjectID
	}
	return ProjectID(s), nil
}

// String returns the canonical string form.
func (p ProjectID) String() string { return string(p) }

// SchemaKey names the project's table called tableName.
func (p ProjectID) SchemaKey(tableName string) string { return ident.SchemaKey(string(p), tableName) }

// Project (tenant) is a single tenant.
type Project struct {
	ID         ProjectID  `json:"id"`
	Name       string     `json:"name"`
	APIKeyHash string     `json:"api_key_hash"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the project was soft-deleted.
func (p *Project) Deleted() bool { return p.DeletedAt != nil }
