package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventregistry/internal/domain"
)

type attendeeService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	logger          *slog.Logger
	contextTimeout  time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

// Enroll returns domain.ErrNotFound, domain.ErrEventFull or
// domain.ErrAlreadyEnrolled unwrapped so callers can show them directly.
func (s *attendeeService) Enroll(ctx context.Context, req *domain.EnrollRequest) (*domain.Participant, error) {
	if msgs := req.Validate(); len(msgs) > 0 {
		return nil, domain.NewValidationErrors(msgs)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p := domain.NewParticipant(req.Name, req.Email, req.EventID)
	if err := s.participantRepo.Enroll(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrAlreadyEnrolled) {
			s.logger.Info("enrollment rejected", "event_id", req.EventID, "reason", err.Error())
			return nil, err
		}
		return nil, fmt.Errorf("enroll participant: %w", err)
	}
	s.logger.Info("participant enrolled", "participant_id", p.ID(), "event_id", p.EventID())
	return p, nil
}

func (s *attendeeService) CancelEnrollment(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, &domain.ValidationError{Field: "email", Message: "is required"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.participantRepo.CancelByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("cancel enrollment: %w", err)
	}
	s.logger.Info("cancel enrollment", "cancelled", ok)
	return ok, nil
}

func (s *attendeeService) CheckIn(ctx context.Context, email string) (domain.CheckInResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.CheckInNotFound, &domain.ValidationError{Field: "email", Message: "is required"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	res, err := s.participantRepo.CheckIn(ctx, email)
	if err != nil {
		return domain.CheckInNotFound, fmt.Errorf("check in: %w", err)
	}
	s.logger.Info("check-in", "result", res.String())
	return res, nil
}

func (s *attendeeService) ListParticipants(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}
