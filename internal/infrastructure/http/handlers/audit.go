package handlers

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
)

// AuditLog logs provisioning events (project_id, table, IP).
func AuditLog(log zerolog.Logger, r *http.Request, event, projectID, table string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("project_id", projectID).
		Str("ip", middleware.ClientIP(r)).
		Str("request_id", chimid.GetReqID(r.Context())).
		Bool("success", success)
	if table != "" {
		ev.Str("table", table)
	}
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("audit")
}
