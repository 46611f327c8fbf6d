package handlers

import (
	"net/http"

	"github.com/amirhosseinghanipour/projectdb/internal/domain/ident"
)

// ValidateID handles GET /ids/validate?id=. Returns { "id", "valid" }; malformed ids are a normal false result.
func ValidateID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":    id,
		"valid": ident.IsValidProjectID(id),
	})
}

// SchemaKey handles GET /ids/schema-key?project_id=&table=. Inputs are joined verbatim.
func SchemaKey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]string{
		"schema_key": ident.SchemaKey(q.Get("project_id"), q.Get("table")),
	})
}
