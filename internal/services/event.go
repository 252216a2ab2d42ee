package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

// DefaultStoreTimeout bounds every store call when no timeout is configured.
const DefaultStoreTimeout = 5 * time.Second

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(in.Title, in.Description, in.Date, in.Time, in.Location)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, storageError("create event", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get event", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, storageError("list events", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	patch.Title = trimPtr(patch.Title)
	patch.Description = trimPtr(patch.Description)
	patch.Time = trimPtr(patch.Time)
	patch.Location = trimPtr(patch.Location)
	if err := requireNonEmpty(map[string]*string{
		"title":       patch.Title,
		"description": patch.Description,
		"time":        patch.Time,
		"location":    patch.Location,
	}); err != nil {
		return nil, err
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, domain.NewValidationError("date")
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError("update event", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return storageError("delete event", err)
	}
	return nil
}

// storageError passes ErrNotFound through and classifies every other repository failure,
// deadlines included, as a StorageError.
func storageError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return &domain.StorageError{Op: op, Err: err}
}
