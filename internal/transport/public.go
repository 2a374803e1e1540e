package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePublicListProjects(w http.ResponseWriter, r *http.Request) {
	copies, err := s.services.Public.ListProjects(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponses(copies))
}

func (s *Server) handlePublicGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Public.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(proj))
}

func (s *Server) handlePublicListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.services.Public.ListEvents(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (s *Server) handlePublicGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.services.Public.GetEvent(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}
