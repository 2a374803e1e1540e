package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/candourhq/candour/internal/auth"
	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
	"github.com/candourhq/candour/internal/domain/relationship"
	"github.com/candourhq/candour/internal/domain/tenancy"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusForError maps domain sentinels to HTTP status codes. Anything
// unmapped is an internal inconsistency and surfaces as 500 without leaking
// detail.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, tenancy.ErrTenantNotFound),
		errors.Is(err, tenancy.ErrRelationshipNotFound),
		errors.Is(err, auth.ErrApplicationNotFound),
		errors.Is(err, relationship.ErrNoParticipant):
		return http.StatusNotFound

	case errors.Is(err, project.ErrNotOwner),
		errors.Is(err, project.ErrProjectInactive),
		errors.Is(err, project.ErrPublicTenantMisuse),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, event.ErrInvalidInput),
		errors.Is(err, tenancy.ErrReservedName),
		errors.Is(err, tenancy.ErrUnknownCollaborator),
		errors.Is(err, tenancy.ErrCollaboratorNotActive),
		errors.Is(err, tenancy.ErrProjectStillShared),
		errors.Is(err, relationship.ErrAlreadyExists),
		errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotApplicationOwner):
		return http.StatusForbidden

	case errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusForError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("internal error", "error", err)
		}
		msg = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msg})
	}
}
