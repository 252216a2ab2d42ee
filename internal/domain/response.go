package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Response is a guest's attendance confirmation (RSVP) for an event.
// swagger:model Response
type Response struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Attendance bool      `json:"attendance"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewResponse returns a new Response. ID and CreatedAt are set by the repository on create.
func NewResponse(eventID, fullName, phone string, attendance bool, message string) *Response {
	return &Response{
		EventID:    eventID,
		FullName:   fullName,
		Phone:      phone,
		Attendance: attendance,
		Message:    message,
	}
}

// EventSummary holds the event display fields copied onto an enriched response.
type EventSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     Date   `json:"date" swaggertype:"string"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// EventLink is the best-effort resolution of Response.EventID. Events may be deleted
// after guests answered, so a link is either resolved or unresolved and readers must
// handle both.
type EventLink struct {
	summary *EventSummary
}

// ResolvedEvent returns a link to an event that still exists.
func ResolvedEvent(s EventSummary) EventLink {
	return EventLink{summary: &s}
}

// UnresolvedEvent returns a link whose event no longer exists.
func UnresolvedEvent() EventLink {
	return EventLink{}
}

// Get returns the linked event summary and whether it resolved.
func (l EventLink) Get() (EventSummary, bool) {
	if l.summary == nil {
		return EventSummary{}, false
	}
	return *l.summary, true
}

// Title returns the event title, or fallback when the link is unresolved.
func (l EventLink) Title(fallback string) string {
	if s, ok := l.Get(); ok && s.Title != "" {
		return s.Title
	}
	return fallback
}

// MarshalJSON encodes an unresolved link as null.
func (l EventLink) MarshalJSON() ([]byte, error) {
	if l.summary == nil {
		return []byte("null"), nil
	}
	return json.Marshal(l.summary)
}

// EnrichedResponse is a response together with its event link.
// swagger:model EnrichedResponse
type EnrichedResponse struct {
	Response
	Event EventLink `json:"event" swaggertype:"object"`
}

// ResponsePatch carries the replaceable fields of a Response. Nil fields are left unchanged.
type ResponsePatch struct {
	EventID    *string
	FullName   *string
	Phone      *string
	Attendance *bool
	Message    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ResponsePatch) IsEmpty() bool {
	return p.EventID == nil && p.FullName == nil && p.Phone == nil && p.Attendance == nil && p.Message == nil
}

// ResponseFilter narrows a response listing. Nil fields do not filter.
type ResponseFilter struct {
	EventID    *string
	Attendance *bool
}

// SubmitResponseInput holds the fields of a new guest response.
type SubmitResponseInput struct {
	EventID    string `json:"event_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Attendance bool   `json:"attendance"`
	Message    string `json:"message"`
}

// ResponseRepository defines the interface for response storage.
type ResponseRepository interface {
	// Create assigns ID and CreatedAt and persists the response.
	Create(ctx context.Context, response *Response) error
	GetByID(ctx context.Context, id string) (*Response, error)
	// List returns matching responses newest-first.
	List(ctx context.Context, filter ResponseFilter) ([]*Response, error)
	Update(ctx context.Context, id string, patch ResponsePatch) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// ResponseService defines the business logic for guest responses.
type ResponseService interface {
	// SubmitResponse records a new response. The referenced event is not required to exist.
	SubmitResponse(ctx context.Context, in SubmitResponseInput) (*Response, error)
	GetResponse(ctx context.Context, id string) (*EnrichedResponse, error)
	ListResponses(ctx context.Context, filter ResponseFilter) ([]*EnrichedResponse, error)
	UpdateResponse(ctx context.Context, id string, patch ResponsePatch) (*Response, error)
	DeleteResponse(ctx context.Context, id string) error
}

// AttendanceLabel returns the guest-facing label for an attendance answer.
func AttendanceLabel(attending bool) string {
	if attending {
		return "Confirmado"
	}
	return "Não virá"
}
