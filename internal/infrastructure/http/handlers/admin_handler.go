package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
	"github.com/amirhosseinghanipour/projectdb/internal/application/project"
	"github.com/amirhosseinghanipour/projectdb/internal/domain"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/http/middleware"
)

// AdminHandler handles /admin/* (create, list, get, delete projects; rotate key). Requires X-Projectdb-Admin-Secret.
type AdminHandler struct {
	createProject    *project.CreateProject
	rotateProjectKey *project.RotateProjectKey
	getProject       *project.GetProject
	listProjects     *project.ListProjects
	deleteProject    *project.DeleteProject
	validate         *validator.Validate
	log              zerolog.Logger
}

// AdminUseCases bundles the project use cases served by AdminHandler.
type AdminUseCases struct {
	Create *project.CreateProject
	Rotate *project.RotateProjectKey
	Get    *project.GetProject
	List   *project.ListProjects
	Delete *project.DeleteProject
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(uc AdminUseCases, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		createProject:    uc.Create,
		rotateProjectKey: uc.Rotate,
		getProject:       uc.Get,
		listProjects:     uc.List,
		deleteProject:    uc.Delete,
		validate:         validator.New(),
		log:              log,
	}
}

// ProjectResponse is the JSON shape of a project (the key hash is never exposed).
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(timeFormat),
		UpdatedAt: p.UpdatedAt.Format(timeFormat),
	}
}

// CreateProject handles POST /admin/projects. Body: { "name": "..." }. Returns { "id", "name", "api_key" }.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required,max=255"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.createProject.Execute(r.Context(), project.CreateProjectInput{Name: body.Name})
	if err != nil {
		h.log.Error().Err(err).Msg("create project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordProjectCreated()
	AuditLog(h.log, r, ports.EventProjectCreated, result.Project.ID.String(), "", true, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      result.Project.ID.String(),
		"name":    result.Project.Name,
		"api_key": result.APIKey,
	})
}

// ListProjects handles GET /admin/projects?limit=&offset=.
func (h *AdminHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.listProjects.Execute(r.Context(), queryInt(r, "limit", project.DefaultListLimit), queryInt(r, "offset", 0))
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	items := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": items})
}

// GetProject handles GET /admin/projects/:id.
func (h *AdminHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.getProject.Execute(r.Context(), id)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// DeleteProject handles DELETE /admin/projects/:id (soft delete; tables are purged by retention).
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	if err := h.deleteProject.Execute(r.Context(), id); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("delete project failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, ports.EventProjectDeleted, id.String(), "", true, "")
	w.WriteHeader(http.StatusNoContent)
}

// RotateProjectKey handles POST /admin/projects/:id/rotate-key. Returns { "api_key": "..." }.
func (h *AdminHandler) RotateProjectKey(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	result, err := h.rotateProjectKey.Execute(r.Context(), project.RotateProjectKeyInput{ProjectID: id})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("rotate project key failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, ports.EventProjectKeyRotated, id.String(), "", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"api_key": result.APIKey})
}

func projectIDParam(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		writeErr(w, http.StatusBadRequest, "", "project id required")
		return "", false
	}
	id, err := domain.ParseProjectID(idStr)
	if err != nil {
		writeDomainErr(w, err)
		return "", false
	}
	return id, true
}
