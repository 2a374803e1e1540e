package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	views, err := s.services.Collaborators.ListActiveCollaborators(r.Context(), tenantID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	var req addCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	view, err := s.services.Collaborators.AddCollaborator(r.Context(), tenantID, req.TenantID, req.FriendlyName)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListOpenInvites(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	views, err := s.services.Collaborators.ListOpenInvites(r.Context(), tenantID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleListPendingInvites(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	views, err := s.services.Collaborators.ListPendingInvites(r.Context(), tenantID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetCollaborator(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	view, err := s.services.Collaborators.FindCollaborator(r.Context(), tenantID, chi.URLParam(r, "tenantID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	if err := s.services.Collaborators.RemoveCollaborator(r.Context(), tenantID, chi.URLParam(r, "tenantID")); err != nil {
		writeError(w, s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
