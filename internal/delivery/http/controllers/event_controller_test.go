package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"weddingrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []*domain.Event {
	return []*domain.Event{
		{ID: "ev-2", Title: "Reception", Description: "Dinner", Date: ceremonyDate, Time: "19:00", Location: "Hall", CreatedAt: createdAt},
		{ID: "ev-1", Title: "Ceremony", Description: "Main ceremony", Date: ceremonyDate, Time: "16:00", Location: "Garden", CreatedAt: createdAt},
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		fakeErr    error
		wantStatus int
		wantIDs    []string
	}{
		{"all", "", nil, http.StatusOK, []string{"ev-2", "ev-1"}},
		{"search by location", "?search=garden", nil, http.StatusOK, []string{"ev-1"}},
		{"search no match", "?search=pool", nil, http.StatusOK, []string{}},
		{"storage error", "", &domain.StorageError{Op: "list events", Err: errors.New("db down")}, http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{events: sampleEvents(), err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				env := decodeEnvelope(t, rr, nil)
				require.NotNil(t, env.Error)
				assert.Equal(t, "internal_error", env.Error.Code)
				return
			}
			var events []domain.Event
			decodeEnvelope(t, rr, &events)
			ids := make([]string, 0, len(events))
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		wantFields     []string
	}{
		{
			name:       "success",
			body:       `{"title":"Ceremony","description":"Main ceremony","date":"2025-10-25","time":"16:00","location":"Garden"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "invalid date",
			body:           `{"title":"Ceremony","date":"25/10/2025"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "date",
		},
		{
			name:           "unknown field rejected",
			body:           `{"title":"Ceremony","id":"custom-id"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "empty body",
			body:           ``,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "empty",
		},
		{
			name:           "service validation error",
			body:           `{"title":"Ceremony"}`,
			fakeErr:        domain.NewValidationError("description", "location"),
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "description is required",
			wantFields:     []string{"description", "location"},
		},
		{
			name:           "storage error",
			body:           `{"title":"Ceremony"}`,
			fakeErr:        &domain.StorageError{Op: "create event", Err: errors.New("db down")},
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "retry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				var event domain.Event
				decodeEnvelope(t, rr, &event)
				assert.Equal(t, "ev-created", event.ID)
				assert.Equal(t, "Ceremony", event.Title)
				assert.Equal(t, "2025-10-25", event.Date.String())
				assert.Equal(t, ceremonyDate, fake.lastInput.Date)
				return
			}
			env := decodeEnvelope(t, rr, nil)
			require.NotNil(t, env.Error, "error response must have error set")
			assert.Contains(t, env.Error.Message, tt.wantBodySubstr, "error message")
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, env.Error.Fields)
			}
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		fake       *fakeEventService
		wantStatus int
		wantCode   string
	}{
		{"found", "ev-1", &fakeEventService{event: sampleEvents()[1]}, http.StatusOK, ""},
		{"not found", "missing", &fakeEventService{err: domain.ErrNotFound}, http.StatusNotFound, "not_found"},
		{"blank id", " ", &fakeEventService{}, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "/events/x", nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				env := decodeEnvelope(t, rr, nil)
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			var event domain.Event
			decodeEnvelope(t, rr, &event)
			assert.Equal(t, "Ceremony", event.Title)
			assert.Equal(t, tt.eventID, tt.fake.lastID)
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		updated := sampleEvents()[1]
		updated.Location = "Chapel"
		fake := &fakeEventService{event: updated}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPatch, "/events/ev-1", bytes.NewBufferString(`{"location":"Chapel"}`))
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ev-1", fake.lastID)
		require.NotNil(t, fake.lastPatch.Location)
		assert.Equal(t, "Chapel", *fake.lastPatch.Location)
		assert.Nil(t, fake.lastPatch.Title)
		assert.Nil(t, fake.lastPatch.Date)
	})

	t.Run("date patch", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvents()[1]}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPut, "/events/ev-1", bytes.NewBufferString(`{"date":"2025-11-01"}`))
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, fake.lastPatch.Date)
		assert.Equal(t, "2025-11-01", fake.lastPatch.Date.String())
	})

	t.Run("read-only fields are ignored", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvents()[1]}
		ctrl := NewEventController(testLogger, fake)
		body := `{"id":"other","created_at":"2020-01-01T00:00:00Z","title":"New"}`
		req := httptest.NewRequest(http.MethodPut, "/events/ev-1", bytes.NewBufferString(body))
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ev-1", fake.lastID)
		assert.Equal(t, domain.EventPatch{Title: ptr("New")}, fake.lastPatch)
	})

	t.Run("unknown field", func(t *testing.T) {
		fake := &fakeEventService{event: sampleEvents()[1]}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPatch, "/events/ev-1", bytes.NewBufferString(`{"venue":"Chapel"}`))
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, fake.lastID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{err: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodPatch, "/events/missing", bytes.NewBufferString(`{"title":"X"}`))
		req.SetPathValue("eventID", "missing")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		env := decodeEnvelope(t, rr, nil)
		assert.Equal(t, "event not found", env.Error.Message)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		wantStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"storage error", &domain.StorageError{Op: "delete event", Err: errors.New("timeout")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{err: tt.fakeErr}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "/events/ev-1", nil)
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.DeleteEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "ev-1", fake.lastID)
			if tt.wantStatus == http.StatusOK {
				var out DeleteResponse
				decodeEnvelope(t, rr, &out)
				assert.Equal(t, "deleted", out.Status)
			}
		})
	}
}
