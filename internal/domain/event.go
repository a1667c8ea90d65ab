package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind discriminates the two event variants. The value is persisted as-is.
type Kind string

const (
	KindWorkshop Kind = "Workshop"
	KindTalk     Kind = "Palestra"
)

// DateLayout is the canonical stored form of an event date (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// dateInputLayout accepts one- or two-digit day and month.
const dateInputLayout = "2/1/2006"

// now is swapped in tests.
var now = time.Now

// ParseKind maps user input to a Kind. Input starting with "w" is a workshop,
// "p..." or "talk" is a talk.
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "w"):
		return KindWorkshop, nil
	case strings.HasPrefix(v, "p"), v == "talk":
		return KindTalk, nil
	}
	return "", newValidationError("kind", fmt.Sprintf("unknown event kind %q (use workshop or palestra)", s))
}

// KindFromStored rebuilds the kind from the persisted discriminant. Anything
// other than "Workshop" is a talk; ok is false when the value was not a known kind.
func KindFromStored(s string) (kind Kind, ok bool) {
	switch Kind(s) {
	case KindWorkshop:
		return KindWorkshop, true
	case KindTalk:
		return KindTalk, true
	}
	return KindTalk, false
}

// ParseDate parses DD/MM/YYYY text into a local calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateInputLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, newValidationError("date", "invalid date, use the DD/MM/YYYY format")
	}
	return d, nil
}

// ParseEventDate parses a date for a new event, which cannot be earlier than
// today.
func ParseEventDate(s string) (time.Time, error) {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if d.Before(today()) {
		return time.Time{}, newValidationError("date", "event date cannot be earlier than today")
	}
	return d, nil
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Event is one event occurrence. Fields are only reachable through accessors
// so a constructed Event always satisfies its invariants.
type Event struct {
	id       int64
	kind     Kind
	name     string
	date     time.Time
	location string
	capacity int
	category string
	price    float64
	extra    string
}

// NewEvent validates the fields and returns a Workshop or Talk. The date must
// not be earlier than today. Name and location are expected to be checked by
// the caller. ID is set by the repository on create.
func NewEvent(kind Kind, name, date, location string, capacity int, price float64, extra string) (*Event, error) {
	if _, ok := describeExtra[kind]; !ok {
		return nil, newValidationError("kind", fmt.Sprintf("unknown event kind %q", kind))
	}
	d, err := ParseEventDate(date)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	if err := checkPrice(price); err != nil {
		return nil, err
	}
	return &Event{
		kind:     kind,
		name:     name,
		date:     d,
		location: location,
		capacity: capacity,
		category: string(kind),
		price:    price,
		extra:    extra,
	}, nil
}

// RestoreEvent rebuilds a persisted event. The date is not checked against
// today, only parsed.
func RestoreEvent(id int64, kind Kind, name, date, location string, capacity int, category string, price float64, extra string) (*Event, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", id, err)
	}
	return &Event{
		id:       id,
		kind:     kind,
		name:     name,
		date:     d,
		location: location,
		capacity: capacity,
		category: category,
		price:    price,
		extra:    extra,
	}, nil
}

func checkCapacity(c int) error {
	if c <= 0 {
		return newValidationError("capacity", "maximum capacity must be a positive integer")
	}
	return nil
}

func checkPrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return newValidationError("price", "ticket price must be a number >= 0")
	}
	return nil
}

func (e *Event) ID() int64        { return e.id }
func (e *Event) Kind() Kind       { return e.kind }
func (e *Event) Name() string     { return e.name }
func (e *Event) Date() time.Time  { return e.date }
func (e *Event) DateText() string { return e.date.Format(DateLayout) }
func (e *Event) Location() string { return e.location }
func (e *Event) Capacity() int    { return e.capacity }
func (e *Event) Category() string { return e.category }
func (e *Event) Price() float64   { return e.price }
func (e *Event) Extra() string    { return e.extra }

// SetID is called by the repository once the row is inserted.
func (e *Event) SetID(id int64) { e.id = id }

func (e *Event) SetName(name string)         { e.name = name }
func (e *Event) SetLocation(location string) { e.location = location }

func (e *Event) SetCapacity(c int) error {
	if err := checkCapacity(c); err != nil {
		return err
	}
	e.capacity = c
	return nil
}

func (e *Event) SetPrice(p float64) error {
	if err := checkPrice(p); err != nil {
		return err
	}
	e.price = p
	return nil
}

// describeExtra holds the kind-specific last line of Describe.
var describeExtra = map[Kind]func(extra string) string{
	KindWorkshop: func(extra string) string { return "Material: " + extra },
	KindTalk:     func(extra string) string { return "Palestrante: " + extra },
}

// Describe returns a multi-line summary of the event.
func (e *Event) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evento: %s\n", e.name)
	fmt.Fprintf(&b, "Data: %s\n", e.DateText())
	fmt.Fprintf(&b, "Local: %s\n", e.location)
	fmt.Fprintf(&b, "Capacidade Máxima: %d\n", e.capacity)
	fmt.Fprintf(&b, "Categoria: %s\n", e.category)
	fmt.Fprintf(&b, "Preço do Ingresso: R$%.2f", e.price)
	if line, ok := describeExtra[e.kind]; ok {
		b.WriteString("\n")
		b.WriteString(line(e.extra))
	}
	return b.String()
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	ListByCategory(ctx context.Context, category string) ([]*Event, error)
	ListByDate(ctx context.Context, date string) ([]*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
}

// EventService defines event registration and lookup operations.
type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	FindByCategory(ctx context.Context, category string) ([]*Event, error)
	// FindByDate returns an empty slice when date does not parse.
	FindByDate(ctx context.Context, date string) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
}
