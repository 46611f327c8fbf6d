// Package tablename normalizes table and column names before they are joined
// into a Schema Key and embedded in SQL.
package tablename

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

// MaxLength keeps "p_xxxxxxxxxxxx_" + name within PostgreSQL's 63-byte identifier limit.
const MaxLength = 48

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// reservedColumns are added to every table automatically.
var reservedColumns = map[string]bool{"id": true, "created_at": true}

// ColumnTypes is the allow-list of column types.
var ColumnTypes = map[string]bool{
	"text":        true,
	"integer":     true,
	"bigint":      true,
	"boolean":     true,
	"numeric":     true,
	"timestamptz": true,
	"jsonb":       true,
	"uuid":        true,
}

// Normalize trims s and enforces a lowercase snake_case identifier.
func Normalize(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name is required", domerrors.ErrInvalidTableName)
	}
	if len(trimmed) > MaxLength {
		return "", fmt.Errorf("%w: %q is longer than %d characters", domerrors.ErrInvalidTableName, trimmed, MaxLength)
	}
	if !namePattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q must match %s", domerrors.ErrInvalidTableName, trimmed, namePattern)
	}
	return trimmed, nil
}

// NormalizeColumns checks every column name and type. Type matching is case-insensitive.
func NormalizeColumns(cols []domain.Column) ([]domain.Column, error) {
	out := make([]domain.Column, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		name := strings.TrimSpace(c.Name)
		if name == "" || len(name) > 63 || !namePattern.MatchString(name) || reservedColumns[name] {
			return nil, fmt.Errorf("%w: column name %q", domerrors.ErrInvalidColumn, c.Name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate column %q", domerrors.ErrInvalidColumn, name)
		}
		typ := strings.ToLower(strings.TrimSpace(c.Type))
		if !ColumnTypes[typ] {
			return nil, fmt.Errorf("%w: unsupported type %q for column %q", domerrors.ErrInvalidColumn, c.Type, name)
		}
		seen[name] = true
		out = append(out, domain.Column{Name: name, Type: typ})
	}
	return out, nil
}
