package ports

import "context"

// Audit event types.
const (
	EventProjectCreated    = "project.created"
	EventProjectKeyRotated = "project.key_rotated"
	EventProjectDeleted    = "project.deleted"
	EventProjectPurged     = "project.purged"
	EventProjectToken      = "project.token_issued"
	EventTableCreated      = "table.created"
	EventTableDropped      = "table.dropped"
)

// AuditEvent is a single audit event for logging or webhooks.
type AuditEvent struct {
	Event     string `json:"event"`
	ProjectID string `json:"project_id"`
	Table     string `json:"table,omitempty"`
	SchemaKey string `json:"schema_key,omitempty"`
	IP        string `json:"ip,omitempty"`
	Success   bool   `json:"success"`
	Err       string `json:"error,omitempty"`
}

// WebhookEmitter sends audit events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
