package event

import "time"

// Event is an immutable record attached to a logical project. Events are
// referenced, never copied, from each project copy's event list; the
// reference is written once at creation time.
type Event struct {
	ID              string            `json:"id"`
	PublicProjectID string            `json:"public_project_id"`
	EventDate       time.Time         `json:"event_date"`
	EventName       string            `json:"event_name"`
	EventType       string            `json:"event_type"`
	CustomMetaData  map[string]string `json:"custom_meta_data"`
	Attachments     []string          `json:"attachments"`
	CreatorTenantID string            `json:"creator_tenant_id"`
}
