package transport

import (
	"encoding/json"
	"net/http"

	"github.com/candourhq/candour/internal/domain/project"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	proj, err := s.services.Projects.Create(r.Context(), tenantID, project.CreateRequest{
		Name:           req.ProjectName,
		Description:    req.ProjectDescription,
		CustomMetaData: req.CustomMetaData,
		Collaborators:  req.Collaborators,
		Public:         req.Public,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(proj))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	copies, err := s.services.Projects.ListForTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponses(copies))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	proj, err := s.services.Projects.Get(r.Context(), tenantID, chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(proj))
}

func (s *Server) handlePatchProject(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	var req patchProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	diff := project.DiffRequest{
		Name:           req.ProjectName,
		Description:    req.ProjectDescription,
		CustomMetaData: req.CustomMetaData,
		Collaborators:  req.Collaborators,
		Public:         req.Public,
	}
	if req.ProjectStatus != nil {
		status := project.Status(*req.ProjectStatus)
		diff.Status = &status
	}

	record, err := s.services.Projects.ApplyDiff(r.Context(), tenantID, chi.URLParam(r, "projectID"), diff)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListProjectCollaborators(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	collaborators, err := s.services.Projects.ListCollaborators(r.Context(), tenantID, chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, collaborators)
}
