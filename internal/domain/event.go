package domain

import (
	"context"
	"time"
)

// Event represents one moment of the wedding (ceremony, reception, ...).
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        Date      `json:"date" swaggertype:"string" example:"2025-10-25"`
	Time        string    `json:"time" example:"13:30"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID and CreatedAt are set by the repository on create.
func NewEvent(title, description string, date Date, timeOfDay, location string) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
	}
}

// Summary returns the display fields copied onto responses that reference this event.
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date,
		Time:     e.Time,
		Location: e.Location,
	}
}

// EventPatch carries the replaceable fields of an Event. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *Date
	Time        *string
	Location    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Time == nil && p.Location == nil
}

// CreateEventInput holds the fields required to create an event.
type CreateEventInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        Date   `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create assigns ID and CreatedAt and persists the event.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListByIDs returns the events that still exist among ids, in no particular order.
	ListByIDs(ctx context.Context, ids []string) ([]*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for wedding events.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// DeleteEvent removes the event only; responses referencing it are kept.
	DeleteEvent(ctx context.Context, id string) error
}
