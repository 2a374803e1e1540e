package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	creds, err := s.services.Auth.Signup(r.Context(), req.Email, req.Password, req.Company)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, creds)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	creds, err := s.services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, creds)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	creds, err := s.services.Auth.CreateApplication(r.Context(), tenantID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, creds)
}

func (s *Server) handleRollApplicationSecret(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	creds, err := s.services.Auth.RollApplicationSecret(r.Context(), tenantID, chi.URLParam(r, "appID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, creds)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	if err := s.services.Auth.DeleteApplication(r.Context(), tenantID, chi.URLParam(r, "appID")); err != nil {
		writeError(w, s.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
