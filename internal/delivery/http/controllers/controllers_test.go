package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"weddingrsvp/internal/delivery/http/helpers"
	"weddingrsvp/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	ceremonyDate = domain.NewDate(2025, time.October, 25)
	createdAt    = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events    []*domain.Event
	event     *domain.Event
	err       error
	lastInput domain.CreateEventInput
	lastID    string
	lastPatch domain.EventPatch
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	e := domain.NewEvent(in.Title, in.Description, in.Date, in.Time, in.Location)
	e.ID = "ev-created"
	e.CreatedAt = createdAt
	return e, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeResponseService implements domain.ResponseService for handler tests.
type fakeResponseService struct {
	items      []*domain.EnrichedResponse
	item       *domain.EnrichedResponse
	err        error
	lastInput  domain.SubmitResponseInput
	lastFilter domain.ResponseFilter
	lastID     string
	lastPatch  domain.ResponsePatch
}

func (f *fakeResponseService) SubmitResponse(ctx context.Context, in domain.SubmitResponseInput) (*domain.Response, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	resp := domain.NewResponse(in.EventID, in.FullName, in.Phone, in.Attendance, in.Message)
	resp.ID = "resp-created"
	resp.CreatedAt = createdAt
	return resp, nil
}

func (f *fakeResponseService) GetResponse(ctx context.Context, id string) (*domain.EnrichedResponse, error) {
	f.lastID = id
	return f.item, f.err
}

func (f *fakeResponseService) ListResponses(ctx context.Context, filter domain.ResponseFilter) ([]*domain.EnrichedResponse, error) {
	f.lastFilter = filter
	return f.items, f.err
}

func (f *fakeResponseService) UpdateResponse(ctx context.Context, id string, patch domain.ResponsePatch) (*domain.Response, error) {
	f.lastID = id
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &f.item.Response, nil
}

func (f *fakeResponseService) DeleteResponse(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

// decodeEnvelope decodes the API envelope and, when dest is non-nil, its data payload.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, dest))
	}
	return envelope
}
