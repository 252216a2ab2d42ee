package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"weddingrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	clock  time.Time
	err    error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
		clock:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	e.CreatedAt = f.clock
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		cp := *e
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *domain.Event) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// blockingEventRepo waits for the context to end on every call.
type blockingEventRepo struct{ fakeEventRepo }

func (b *blockingEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func ptr[T any](v T) *T { return &v }

func ceremonyInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:       "Ceremony",
		Description: "Main ceremony",
		Date:        domain.NewDate(2025, time.October, 25),
		Time:        "16:00",
		Location:    "Garden",
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, time.Second)

	event, err := svc.CreateEvent(context.Background(), ceremonyInput())
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.Equal(t, "Ceremony", event.Title)
	assert.Equal(t, "2025-10-25", event.Date.String())

	listed, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, event.ID, listed[0].ID)
}

func TestEventService_CreateEvent_TrimsFields(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), time.Second)
	in := ceremonyInput()
	in.Title = "  Ceremony  "
	in.Location = "\tGarden\n"

	event, err := svc.CreateEvent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Ceremony", event.Title)
	assert.Equal(t, "Garden", event.Location)
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateEventInput)
		fields []string
	}{
		{"missing title", func(in *domain.CreateEventInput) { in.Title = "" }, []string{"title"}},
		{"blank location", func(in *domain.CreateEventInput) { in.Location = "   " }, []string{"location"}},
		{"missing date", func(in *domain.CreateEventInput) { in.Date = domain.Date{} }, []string{"date"}},
		{"several", func(in *domain.CreateEventInput) {
			in.Description = ""
			in.Time = ""
		}, []string{"description", "time"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			svc := NewEventService(repo, time.Second)
			in := ceremonyInput()
			tt.mutate(&in)

			_, err := svc.CreateEvent(context.Background(), in)
			require.Error(t, err)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.ElementsMatch(t, tt.fields, verr.Fields)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestEventService_CreateEvent_StorageError(t *testing.T) {
	repo := newFakeEventRepo()
	repo.err = errors.New("connection refused")
	svc := NewEventService(repo, time.Second)

	_, err := svc.CreateEvent(context.Background(), ceremonyInput())
	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
	assert.ErrorContains(t, err, "connection refused")
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), time.Second)
	_, err := svc.GetEvent(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_ListEvents_NewestFirst(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), time.Second)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, ceremonyInput())
	require.NoError(t, err)
	in := ceremonyInput()
	in.Title = "Reception"
	second, err := svc.CreateEvent(ctx, in)
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, second.ID, events[0].ID)
	assert.Equal(t, first.ID, events[1].ID)
}

func TestEventService_ListEvents_Empty(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), time.Second)
	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventService_ListEvents_Deadline(t *testing.T) {
	repo := &blockingEventRepo{fakeEventRepo: *newFakeEventRepo()}
	svc := NewEventService(repo, 10*time.Millisecond)

	_, err := svc.ListEvents(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(), time.Second)
	event, err := svc.CreateEvent(ctx, ceremonyInput())
	require.NoError(t, err)

	t.Run("only supplied fields change", func(t *testing.T) {
		updated, err := svc.UpdateEvent(ctx, event.ID, domain.EventPatch{Location: ptr("Chapel")})
		require.NoError(t, err)
		assert.Equal(t, "Chapel", updated.Location)
		assert.Equal(t, "Ceremony", updated.Title)
		assert.Equal(t, "Main ceremony", updated.Description)
		assert.Equal(t, event.Date, updated.Date)
		assert.Equal(t, "16:00", updated.Time)
		assert.Equal(t, event.CreatedAt, updated.CreatedAt)
	})

	t.Run("blank supplied field is rejected", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, event.ID, domain.EventPatch{Title: ptr("  ")})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"title"}, verr.Fields)
	})

	t.Run("zero date is rejected", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, event.ID, domain.EventPatch{Date: &domain.Date{}})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, "missing", domain.EventPatch{Title: ptr("X")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(), time.Second)
	event, err := svc.CreateEvent(ctx, ceremonyInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	_, err = svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteEvent(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
