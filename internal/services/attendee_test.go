package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventregistry/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendeeFixture(t *testing.T, capacity int) (domain.AttendeeService, *fakeParticipantRepo, *domain.Event) {
	t.Helper()
	events := newFakeEventRepo()
	e, err := domain.NewEvent(domain.KindWorkshop, "WS", "31/12/2099", "Room", capacity, 80, "Mat")
	require.NoError(t, err)
	require.NoError(t, events.Create(context.Background(), e))
	participants := newFakeParticipantRepo(events)
	return NewAttendeeService(events, participants, discardLogger(), time.Second), participants, e
}

func TestAttendeeService_Enroll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		capacity int
		existing []string
		req      func(eventID int64) *domain.EnrollRequest
		wantErr  error
	}{
		{
			name:     "success",
			capacity: 2,
			req: func(id int64) *domain.EnrollRequest {
				return &domain.EnrollRequest{Name: "Ana", Email: "ana@x.com", EventID: id}
			},
		},
		{
			name:     "duplicate email case-insensitive",
			capacity: 2,
			existing: []string{"ana@x.com"},
			req: func(id int64) *domain.EnrollRequest {
				return &domain.EnrollRequest{Name: "Bea", Email: "ANA@X.COM", EventID: id}
			},
			wantErr: domain.ErrAlreadyEnrolled,
		},
		{
			name:     "full",
			capacity: 1,
			existing: []string{"ana@x.com"},
			req: func(id int64) *domain.EnrollRequest {
				return &domain.EnrollRequest{Name: "Bea", Email: "bea@x.com", EventID: id}
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name:     "unknown event",
			capacity: 1,
			req: func(id int64) *domain.EnrollRequest {
				return &domain.EnrollRequest{Name: "Bea", Email: "bea@x.com", EventID: id + 100}
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:     "invalid email",
			capacity: 1,
			req: func(id int64) *domain.EnrollRequest {
				return &domain.EnrollRequest{Name: "Bea", Email: "bea", EventID: id}
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, event := newAttendeeFixture(t, tt.capacity)
			for _, email := range tt.existing {
				require.NoError(t, repo.Enroll(ctx, domain.NewParticipant("X", email, event.ID())))
			}

			p, err := svc.Enroll(ctx, tt.req(event.ID()))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, p)
				assert.Len(t, repo.participants, len(tt.existing))
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, p.ID())
			assert.False(t, p.CheckedIn())
			assert.Equal(t, event.ID(), p.EventID())
		})
	}
}

func TestAttendeeService_Enroll_CapacityBound(t *testing.T) {
	ctx := context.Background()
	for _, capacity := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			svc, _, event := newAttendeeFixture(t, capacity)
			for i := 0; i < capacity; i++ {
				_, err := svc.Enroll(ctx, &domain.EnrollRequest{Name: "P", Email: fmt.Sprintf("p%d@x.com", i), EventID: event.ID()})
				require.NoError(t, err)
			}
			_, err := svc.Enroll(ctx, &domain.EnrollRequest{Name: "P", Email: "extra@x.com", EventID: event.ID()})
			require.ErrorIs(t, err, domain.ErrEventFull)
		})
	}
}

func TestAttendeeService_Enroll_RepoError(t *testing.T) {
	svc, repo, event := newAttendeeFixture(t, 1)
	repo.err = errors.New("db error")

	_, err := svc.Enroll(context.Background(), &domain.EnrollRequest{Name: "Ana", Email: "ana@x.com", EventID: event.ID()})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "enroll participant")
}

func TestAttendeeService_CheckIn(t *testing.T) {
	ctx := context.Background()
	svc, _, event := newAttendeeFixture(t, 2)
	_, err := svc.Enroll(ctx, &domain.EnrollRequest{Name: "Lia", Email: "lia@x.com", EventID: event.ID()})
	require.NoError(t, err)

	res, err := svc.CheckIn(ctx, "lia@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckInDone, res)

	res, err = svc.CheckIn(ctx, " LIA@x.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckInAlreadyDone, res)

	res, err = svc.CheckIn(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckInNotFound, res)

	_, err = svc.CheckIn(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.ListParticipants(ctx, event.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].CheckedIn())
}

func TestAttendeeService_CancelEnrollment(t *testing.T) {
	ctx := context.Background()
	svc, repo, event := newAttendeeFixture(t, 1)
	_, err := svc.Enroll(ctx, &domain.EnrollRequest{Name: "Carlos", Email: "carlos@x.com", EventID: event.ID()})
	require.NoError(t, err)

	ok, err := svc.CancelEnrollment(ctx, "carlos@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, repo.participants)

	ok, err = svc.CancelEnrollment(ctx, "carlos@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CancelEnrollment(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.err = errors.New("db error")
	_, err = svc.CancelEnrollment(ctx, "carlos@x.com")
	require.Error(t, err)
}

func TestAttendeeService_ListParticipants_UnknownEvent(t *testing.T) {
	svc, _, _ := newAttendeeFixture(t, 1)
	_, err := svc.ListParticipants(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
