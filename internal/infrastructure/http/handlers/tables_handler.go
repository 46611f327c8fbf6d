package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/application/table"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
)

// TablesHandler handles /tables/* for the project resolved by TenantResolver.
type TablesHandler struct {
	create   *table.CreateTable
	list     *table.ListTables
	get      *table.GetTable
	drop     *table.DropTable
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTablesHandler(create *table.CreateTable, list *table.ListTables, get *table.GetTable, drop *table.DropTable, log zerolog.Logger) *TablesHandler {
	return &TablesHandler{create: create, list: list, get: get, drop: drop, validate: validator.New(), log: log}
}

// TableResponse is the JSON shape of a project table.
type TableResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SchemaKey string          `json:"schema_key"`
	Columns   []domain.Column `json:"columns"`
	CreatedAt string          `json:"created_at"`
}

func toTableResponse(t *domain.Table) TableResponse {
	cols := t.Columns
	if cols == nil {
		cols = []domain.Column{}
	}
	return TableResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		SchemaKey: t.SchemaKey,
		Columns:   cols,
		CreatedAt: t.CreatedAt.Format(timeFormat),
	}
}

type createTableRequest struct {
	Name    string `json:"name" validate:"required"`
	Columns []struct {
		Name string `json:"name" validate:"required"`
		Type string `json:"type" validate:"required"`
	} `json:"columns" validate:"max=100,dive"`
}

// Create handles POST /tables. Body: { "name": "posts", "columns": [{ "name": "title", "type": "text" }] }.
func (h *TablesHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	var body createTableRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	cols := make([]domain.Column, 0, len(body.Columns))
	for _, c := range body.Columns {
		cols = append(cols, domain.Column{Name: c.Name, Type: c.Type})
	}
	t, err := h.create.Execute(r.Context(), table.CreateTableInput{ProjectID: p.ID, Name: body.Name, Columns: cols})
	if err != nil {
		middleware.RecordTableCreated(false)
		AuditLog(h.log, r, ports.EventTableCreated, p.ID.String(), body.Name, false, err.Error())
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("create table failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordTableCreated(true)
	AuditLog(h.log, r, ports.EventTableCreated, p.ID.String(), t.Name, true, "")
	writeJSON(w, http.StatusCreated, toTableResponse(t))
}

// List handles GET /tables.
func (h *TablesHandler) List(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	list, err := h.list.Execute(r.Context(), p.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("list tables failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	items := make([]TableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTableResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tables": items})
}

// Get handles GET /tables/:name.
func (h *TablesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	t, err := h.get.Execute(r.Context(), p.ID, chi.URLParam(r, "name"))
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get table failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(t))
}

// Drop handles DELETE /tables/:name.
func (h *TablesHandler) Drop(w http.ResponseWriter, r *http.Request) {
	p := middleware.ProjectFromContext(r.Context())
	if p == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	name := chi.URLParam(r, "name")
	if err := h.drop.Execute(r.Context(), p.ID, name); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("drop table failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, ports.EventTableDropped, p.ID.String(), name, true, "")
	w.WriteHeader(http.StatusNoContent)
}
