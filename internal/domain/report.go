package domain

import "context"

// EventEnrollment is the enrolled count of one event.
type EventEnrollment struct {
	EventID  int64  `json:"event_id"`
	Name     string `json:"name"`
	Enrolled int    `json:"enrolled"`
}

// EventAvailability is an event that still has free seats.
type EventAvailability struct {
	EventID   int64  `json:"event_id"`
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// EventRevenue is price times enrolled count for one event.
type EventRevenue struct {
	EventID int64   `json:"event_id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// ReportRepository runs read-only aggregations over events and participants.
type ReportRepository interface {
	CountsByEvent(ctx context.Context) ([]*EventEnrollment, error)
	EventsWithAvailability(ctx context.Context) ([]*EventAvailability, error)
	// RevenueByEventName returns 0 when no event matches.
	RevenueByEventName(ctx context.Context, name string) (float64, error)
	Revenues(ctx context.Context) ([]*EventRevenue, error)
}

// ReportService exposes the reports to the presentation layer.
type ReportService interface {
	CountsByEvent(ctx context.Context) ([]*EventEnrollment, error)
	EventsWithAvailability(ctx context.Context) ([]*EventAvailability, error)
	RevenueByEventName(ctx context.Context, name string) (float64, error)
	Revenues(ctx context.Context) ([]*EventRevenue, error)
}
