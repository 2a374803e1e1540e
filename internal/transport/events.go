package transport

import (
	"encoding/json"
	"net/http"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ev, err := s.services.Events.Create(r.Context(), tenantID, chi.URLParam(r, "projectID"), event.CreateRequest{
		EventName:      req.EventName,
		EventType:      req.EventType,
		CustomMetaData: req.CustomMetaData,
		Attachments:    req.Attachments,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(ev))
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	events, err := s.services.Events.ListForProject(r.Context(), tenantID, chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok {
		writeError(w, s.logger, ErrUnauthorized)
		return
	}

	ev, err := s.services.Events.Get(r.Context(), tenantID, chi.URLParam(r, "projectID"), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}
