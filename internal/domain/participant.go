package domain

import (
	"context"
	"fmt"
)

// Participant is a person enrolled in exactly one event.
type Participant struct {
	id        int64
	name      string
	email     string
	checkedIn bool
	eventID   int64
}

// NewParticipant returns a participant that has not checked in. ID is set by
// the repository on enroll.
func NewParticipant(name, email string, eventID int64) *Participant {
	return &Participant{name: name, email: email, eventID: eventID}
}

// RestoreParticipant rebuilds a persisted participant.
func RestoreParticipant(id int64, name, email string, checkedIn bool, eventID int64) *Participant {
	return &Participant{id: id, name: name, email: email, checkedIn: checkedIn, eventID: eventID}
}

func (p *Participant) ID() int64       { return p.id }
func (p *Participant) Name() string    { return p.name }
func (p *Participant) Email() string   { return p.email }
func (p *Participant) CheckedIn() bool { return p.checkedIn }
func (p *Participant) EventID() int64  { return p.eventID }

func (p *Participant) SetID(id int64) { p.id = id }

func (p *Participant) String() string {
	return fmt.Sprintf("Participante: %s | Email: %s | Evento ID: %d", p.name, p.email, p.eventID)
}

// CheckInResult is the outcome of a check-in attempt.
type CheckInResult int

const (
	CheckInNotFound CheckInResult = iota
	CheckInDone
	CheckInAlreadyDone
)

func (r CheckInResult) String() string {
	switch r {
	case CheckInDone:
		return "checked in"
	case CheckInAlreadyDone:
		return "already checked in"
	default:
		return "not found"
	}
}

// ParticipantRepository defines storage operations for enrollments.
type ParticipantRepository interface {
	// Enroll checks capacity and duplicates and inserts p in one transaction.
	Enroll(ctx context.Context, p *Participant) error
	// CancelByEmail deletes the first participant with that email in any event.
	CancelByEmail(ctx context.Context, email string) (bool, error)
	CheckIn(ctx context.Context, email string) (CheckInResult, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*Participant, error)
}

// AttendeeService defines enrollment, cancellation and check-in.
type AttendeeService interface {
	Enroll(ctx context.Context, req *EnrollRequest) (*Participant, error)
	CancelEnrollment(ctx context.Context, email string) (bool, error)
	CheckIn(ctx context.Context, email string) (CheckInResult, error)
	ListParticipants(ctx context.Context, eventID int64) ([]*Participant, error)
}
