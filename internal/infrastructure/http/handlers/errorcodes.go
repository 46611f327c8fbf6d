package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidProjectID = "invalid_project_id"
	ErrCodeInvalidTableName = "invalid_table_name"
	ErrCodeInvalidColumn    = "invalid_column"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeForbidden        = "forbidden"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeNotImplemented   = "not_implemented"
	ErrCodeInternal         = "internal_error"
)
