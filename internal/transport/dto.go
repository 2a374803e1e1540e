package transport

import (
	"time"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/domain/project"
)

type projectResponse struct {
	ProjectID          string            `json:"projectId"`
	ProjectName        string            `json:"projectName"`
	ProjectDescription string            `json:"projectDescription"`
	ProjectStatus      string            `json:"projectStatus"`
	StartedDate        time.Time         `json:"startedDate"`
	CustomMetaData     map[string]string `json:"customMetaData"`
	Collaborators      []string          `json:"collaborators"`
	Public             bool              `json:"public"`
}

func toProjectResponse(c *project.Copy) projectResponse {
	return projectResponse{
		ProjectID:          c.PublicID,
		ProjectName:        c.Name,
		ProjectDescription: c.Description,
		ProjectStatus:      string(c.Status),
		StartedDate:        c.StartedDate,
		CustomMetaData:     c.CustomMetaData,
		Collaborators:      c.Collaborators,
		Public:             c.Public,
	}
}

func toProjectResponses(copies []project.Copy) []projectResponse {
	out := make([]projectResponse, 0, len(copies))
	for i := range copies {
		out = append(out, toProjectResponse(&copies[i]))
	}
	return out
}

type eventResponse struct {
	EventID        string            `json:"eventId"`
	EventDate      time.Time         `json:"eventDate"`
	EventName      string            `json:"eventName"`
	EventType      string            `json:"eventType"`
	CustomMetaData map[string]string `json:"customMetaData"`
	Attachments    []string          `json:"attachments"`
}

func toEventResponse(ev *event.Event) eventResponse {
	return eventResponse{
		EventID:        ev.ID,
		EventDate:      ev.EventDate,
		EventName:      ev.EventName,
		EventType:      ev.EventType,
		CustomMetaData: ev.CustomMetaData,
		Attachments:    ev.Attachments,
	}
}

func toEventResponses(events []event.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

type createProjectRequest struct {
	ProjectName        string            `json:"projectName"`
	ProjectDescription string            `json:"projectDescription"`
	CustomMetaData     map[string]string `json:"customMetaData"`
	Collaborators      []string          `json:"collaborators"`
	Public             bool              `json:"public"`
}

type patchProjectRequest struct {
	ProjectName        *string           `json:"projectName"`
	ProjectDescription *string           `json:"projectDescription"`
	ProjectStatus      *string           `json:"projectStatus"`
	CustomMetaData     map[string]string `json:"customMetaData"`
	Collaborators      []string          `json:"collaborators"`
	Public             *bool             `json:"public"`
}

type createEventRequest struct {
	EventName      string            `json:"eventName"`
	EventType      string            `json:"eventType"`
	CustomMetaData map[string]string `json:"customMetaData"`
	Attachments    []string          `json:"attachments"`
}

type addCollaboratorRequest struct {
	TenantID     string `json:"tenantID"`
	FriendlyName string `json:"friendlyName"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
