package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"weddingrsvp/internal/domain"
)

type responseService struct {
	responseRepo   domain.ResponseRepository
	eventRepo      domain.EventRepository
	notifier       domain.ResponseNotifier
	recorder       domain.SubmissionRecorder
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewResponseService returns a ResponseService. notifier and recorder may be nil.
func NewResponseService(
	responseRepo domain.ResponseRepository,
	eventRepo domain.EventRepository,
	notifier domain.ResponseNotifier,
	recorder domain.SubmissionRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ResponseService {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &responseService{
		responseRepo:   responseRepo,
		eventRepo:      eventRepo,
		notifier:       notifier,
		recorder:       recorder,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *responseService) SubmitResponse(ctx context.Context, in domain.SubmitResponseInput) (*domain.Response, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The event is not looked up; submissions are accepted for any event id.
	resp := domain.NewResponse(in.EventID, in.FullName, in.Phone, in.Attendance, in.Message)
	if err := s.responseRepo.Create(storeCtx, resp); err != nil {
		return nil, storageError("create response", err)
	}

	if s.recorder != nil {
		s.recorder.ObserveSubmission(resp.Attendance)
	}
	s.notify(ctx, resp)
	return resp, nil
}

// notify tells the couple about a new response. It is best effort: failures are logged
// and never undo or fail the submission.
func (s *responseService) notify(ctx context.Context, resp *domain.Response) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title := "-"
	if event, err := s.eventRepo.GetByID(ctx, resp.EventID); err == nil {
		title = event.Title
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "lookup event for notification", "event_id", resp.EventID, "err", err)
	}
	data := &domain.ResponseReceivedEmailData{
		FullName:   resp.FullName,
		Phone:      resp.Phone,
		Attendance: resp.Attendance,
		Message:    resp.Message,
		EventTitle: title,
	}
	if err := s.notifier.ResponseReceived(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "response notification failed", "response_id", resp.ID, "err", err)
	}
}

func (s *responseService) GetResponse(ctx context.Context, id string) (*domain.EnrichedResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	resp, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get response", err)
	}
	enriched, err := s.enrich(ctx, []*domain.Response{resp})
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

func (s *responseService) ListResponses(ctx context.Context, filter domain.ResponseFilter) ([]*domain.EnrichedResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	responses, err := s.responseRepo.List(ctx, filter)
	if err != nil {
		return nil, storageError("list responses", err)
	}
	return s.enrich(ctx, responses)
}

// enrich resolves the event of each response in one store round trip. Events that no
// longer exist yield an unresolved link, never an error.
func (s *responseService) enrich(ctx context.Context, responses []*domain.Response) ([]*domain.EnrichedResponse, error) {
	out := make([]*domain.EnrichedResponse, 0, len(responses))
	if len(responses) == 0 {
		return out, nil
	}

	seen := make(map[string]struct{}, len(responses))
	ids := make([]string, 0, len(responses))
	for _, r := range responses {
		if r.EventID == "" {
			continue
		}
		if _, ok := seen[r.EventID]; ok {
			continue
		}
		seen[r.EventID] = struct{}{}
		ids = append(ids, r.EventID)
	}
	events, err := s.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, storageError("resolve response events", err)
	}
	byID := make(map[string]*domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	for _, r := range responses {
		link := domain.UnresolvedEvent()
		if e, ok := byID[r.EventID]; ok {
			link = domain.ResolvedEvent(e.Summary())
		}
		out = append(out, &domain.EnrichedResponse{Response: *r, Event: link})
	}
	return out, nil
}

func (s *responseService) UpdateResponse(ctx context.Context, id string, patch domain.ResponsePatch) (*domain.Response, error) {
	patch.EventID = trimPtr(patch.EventID)
	patch.FullName = trimPtr(patch.FullName)
	patch.Phone = trimPtr(patch.Phone)
	patch.Message = trimPtr(patch.Message)
	if err := requireNonEmpty(map[string]*string{
		"event_id":  patch.EventID,
		"full_name": patch.FullName,
		"phone":     patch.Phone,
	}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.responseRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError("update response", err)
	}
	return updated, nil
}

func (s *responseService) DeleteResponse(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.responseRepo.Delete(ctx, id); err != nil {
		return storageError("delete response", err)
	}
	return nil
}
