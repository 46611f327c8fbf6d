package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTenantNotFound   = errors.New("project not found or invalid API key")
	ErrInvalidProjectID = errors.New("invalid project id")
	ErrInvalidTableName = errors.New("invalid table name")
	ErrInvalidColumn    = errors.New("invalid column definition")
	ErrTableExists      = errors.New("table already exists for this project")
	ErrTableNotFound    = errors.New("table not found")
)
