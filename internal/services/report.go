package services

import (
	"context"
	"fmt"
	"time"

	"eventregistry/internal/domain"
)

type reportService struct {
	reportRepo     domain.ReportRepository
	contextTimeout time.Duration
}

func NewReportService(reportRepo domain.ReportRepository, timeout time.Duration) domain.ReportService {
	return &reportService{reportRepo: reportRepo, contextTimeout: timeout}
}

func (s *reportService) CountsByEvent(ctx context.Context) ([]*domain.EventEnrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	counts, err := s.reportRepo.CountsByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("count participants by event: %w", err)
	}
	return counts, nil
}

func (s *reportService) EventsWithAvailability(ctx context.Context) ([]*domain.EventAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	available, err := s.reportRepo.EventsWithAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events with availability: %w", err)
	}
	return available, nil
}

func (s *reportService) RevenueByEventName(ctx context.Context, name string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	revenue, err := s.reportRepo.RevenueByEventName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("revenue for %q: %w", name, err)
	}
	return revenue, nil
}

func (s *reportService) Revenues(ctx context.Context) ([]*domain.EventRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	revenues, err := s.reportRepo.Revenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revenues: %w", err)
	}
	return revenues, nil
}
