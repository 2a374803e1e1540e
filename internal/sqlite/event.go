package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/candourhq/candour/internal/domain/event"
	"github.com/candourhq/candour/internal/repository"
)

// EventRepository implements event.Repository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event. There is no update or delete: events are
// immutable once written.
func (r *EventRepository) Create(ctx context.Context, ev *event.Event) error {
	meta, err := marshalJSON(ev.CustomMetaData)
	if err != nil {
		return err
	}
	attachments, err := marshalJSON(ev.Attachments)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (id, public_project_id, event_date, event_name, event_type, custom_meta, attachments, creator_tenant_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.PublicProjectID, ev.EventDate, ev.EventName, ev.EventType, meta, attachments, ev.CreatorTenantID)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Get retrieves an event by id
func (r *EventRepository) Get(ctx context.Context, id string) (*event.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, public_project_id, event_date, event_name, event_type, custom_meta, attachments, creator_tenant_id
		FROM events
		WHERE id = ?
	`, id)

	ev, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return ev, nil
}

// GetMany retrieves the listed events, preserving reference order
func (r *EventRepository) GetMany(ctx context.Context, ids []string) ([]event.Event, error) {
	if len(ids) == 0 {
		return []event.Event{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, public_project_id, event_date, event_name, event_type, custom_meta, attachments, creator_tenant_id
		FROM events
		WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]event.Event, len(ids))
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		byID[ev.ID] = *ev
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	events := make([]event.Event, 0, len(ids))
	for _, id := range ids {
		if ev, ok := byID[id]; ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

func scanEvent(scan func(...any) error) (*event.Event, error) {
	var ev event.Event
	var meta, attachments string

	err := scan(&ev.ID, &ev.PublicProjectID, &ev.EventDate, &ev.EventName, &ev.EventType, &meta, &attachments, &ev.CreatorTenantID)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(meta, &ev.CustomMetaData); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(attachments, &ev.Attachments); err != nil {
		return nil, err
	}
	return &ev, nil
}
