package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventregistry/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by eventRepo. Each call is
// bounded by timeout.
func NewEventService(eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *domain.CreateEventRequest) (*domain.Event, error) {
	if msgs := req.Validate(); len(msgs) > 0 {
		return nil, domain.NewValidationErrors(msgs)
	}
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	event, err := domain.NewEvent(kind, req.Name, req.Date, req.Location, req.Capacity, req.Price, req.Extra)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created",
		"event_id", event.ID(),
		"kind", string(event.Kind()),
		"name", event.Name(),
		"capacity", event.Capacity(),
	)
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) FindByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("find events by category: %w", err)
	}
	return events, nil
}

func (s *eventService) FindByDate(ctx context.Context, date string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find events by date: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
