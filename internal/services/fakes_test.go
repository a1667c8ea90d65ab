package services

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"eventregistry/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[int64]*domain.Event
	order  []int64
	nextID int64
	err    error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.SetID(f.nextID)
	f.nextID++
	f.byID[e.ID()] = e
	f.order = append(f.order, e.ID())
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	return f.filter(func(*domain.Event) bool { return true })
}

func (f *fakeEventRepo) ListByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	return f.filter(func(e *domain.Event) bool { return strings.EqualFold(e.Category(), category) })
}

func (f *fakeEventRepo) ListByDate(ctx context.Context, date string) ([]*domain.Event, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return []*domain.Event{}, nil
	}
	return f.filter(func(e *domain.Event) bool { return e.DateText() == d.Format(domain.DateLayout) })
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) filter(keep func(*domain.Event) bool) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0)
	for _, id := range f.order {
		if e := f.byID[id]; keep(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeParticipantRepo enforces the same rules as the SQL store.
type fakeParticipantRepo struct {
	events       *fakeEventRepo
	participants []*domain.Participant
	nextID       int64
	err          error
}

func newFakeParticipantRepo(events *fakeEventRepo) *fakeParticipantRepo {
	return &fakeParticipantRepo{events: events, nextID: 1}
}

func (f *fakeParticipantRepo) Enroll(ctx context.Context, p *domain.Participant) error {
	if f.err != nil {
		return f.err
	}
	e, ok := f.events.byID[p.EventID()]
	if !ok {
		return domain.ErrNotFound
	}
	enrolled := 0
	for _, q := range f.participants {
		if q.EventID() != p.EventID() {
			continue
		}
		if strings.EqualFold(q.Email(), p.Email()) {
			return domain.ErrAlreadyEnrolled
		}
		enrolled++
	}
	if enrolled >= e.Capacity() {
		return domain.ErrEventFull
	}
	p.SetID(f.nextID)
	f.nextID++
	f.participants = append(f.participants, p)
	return nil
}

func (f *fakeParticipantRepo) CancelByEmail(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, p := range f.participants {
		if strings.EqualFold(p.Email(), email) {
			f.participants = append(f.participants[:i], f.participants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipantRepo) CheckIn(ctx context.Context, email string) (domain.CheckInResult, error) {
	if f.err != nil {
		return domain.CheckInNotFound, f.err
	}
	for i, p := range f.participants {
		if strings.EqualFold(p.Email(), email) {
			if p.CheckedIn() {
				return domain.CheckInAlreadyDone, nil
			}
			f.participants[i] = domain.RestoreParticipant(p.ID(), p.Name(), p.Email(), true, p.EventID())
			return domain.CheckInDone, nil
		}
	}
	return domain.CheckInNotFound, nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Participant, 0)
	for _, p := range f.participants {
		if p.EventID() == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	counts    []*domain.EventEnrollment
	available []*domain.EventAvailability
	revenue   map[string]float64
	revenues  []*domain.EventRevenue
	err       error
}

func (f *fakeReportRepo) CountsByEvent(ctx context.Context) ([]*domain.EventEnrollment, error) {
	return f.counts, f.err
}

func (f *fakeReportRepo) EventsWithAvailability(ctx context.Context) ([]*domain.EventAvailability, error) {
	return f.available, f.err
}

func (f *fakeReportRepo) RevenueByEventName(ctx context.Context, name string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.revenue[strings.ToLower(name)], nil
}

func (f *fakeReportRepo) Revenues(ctx context.Context) ([]*domain.EventRevenue, error) {
	return f.revenues, f.err
}
