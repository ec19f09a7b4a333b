package expiration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	"github.com/aulaflex/tutor-scheduler/internal/domain/booking/bookingtest"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type nopSink struct{}

func (nopSink) Log(*uint, string, string, string, any) error { return nil }

func newSweeper(repo *bookingtest.Repo) *Sweeper {
	dispatcher := audit.NewDispatcher(nopSink{}, zap.NewNop())
	return NewSweeper(repo, dispatcher, zap.NewNop(), nil)
}

func pendingReservation(deadline time.Time) models.Reservation {
	return models.Reservation{
		UUID:             uuid.New(),
		CourseID:         10,
		TeacherID:        1,
		StudentID:        2,
		ReserveTime:      time.Now().UTC().Add(48 * time.Hour),
		DurationMin:      60,
		TeacherStatus:    "pending",
		StudentStatus:    "pending",
		ResponseDeadline: &deadline,
	}
}

func TestSweepExpiresTimedOutPending(t *testing.T) {
	repo := bookingtest.NewRepo()
	repo.SetCredits(2, 10, 4)

	res := pendingReservation(time.Now().Add(-time.Hour))
	repo.AddReservation(res)

	result, err := newSweeper(repo).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.ExpiredIDs, 1)
	assert.Equal(t, res.UUID, result.ExpiredIDs[0])

	stored := repo.Reservations[res.UUID]
	assert.Equal(t, "cancelled", stored.TeacherStatus)
	assert.Equal(t, "cancelled", stored.StudentStatus)
	assert.Empty(t, stored.RejectionReason)

	// The student's lesson comes back.
	assert.Equal(t, 5, repo.Credits(2, 10))
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := bookingtest.NewRepo()
	repo.SetCredits(2, 10, 4)
	repo.AddReservation(pendingReservation(time.Now().Add(-time.Hour)))

	sw := newSweeper(repo)

	first, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count)

	// Refunded exactly once.
	assert.Equal(t, 5, repo.Credits(2, 10))
}

func TestSweepLeavesFutureDeadlinesAlone(t *testing.T) {
	repo := bookingtest.NewRepo()
	repo.SetCredits(2, 10, 4)

	res := pendingReservation(time.Now().Add(time.Hour))
	repo.AddReservation(res)

	result, err := newSweeper(repo).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	assert.Equal(t, "pending", repo.Reservations[res.UUID].TeacherStatus)
	assert.Equal(t, 4, repo.Credits(2, 10))
}

func TestSweepLeavesConfirmedAlone(t *testing.T) {
	repo := bookingtest.NewRepo()
	repo.SetCredits(2, 10, 4)

	res := pendingReservation(time.Now().Add(-time.Hour))
	res.TeacherStatus = "reserved"
	res.StudentStatus = "reserved"
	res.ResponseDeadline = nil
	repo.AddReservation(res)

	result, err := newSweeper(repo).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	assert.Equal(t, "reserved", repo.Reservations[res.UUID].TeacherStatus)
	assert.Equal(t, 4, repo.Credits(2, 10))
}

func TestSweepSkipsFailingRowAndContinues(t *testing.T) {
	repo := bookingtest.NewRepo()
	// Only the second reservation's student has a lesson account; the
	// first row's refund fails and must not stop the sweep.
	repo.SetCredits(3, 10, 2)

	broken := pendingReservation(time.Now().Add(-2 * time.Hour))
	repo.AddReservation(broken)

	healthy := pendingReservation(time.Now().Add(-time.Hour))
	healthy.StudentID = 3
	repo.AddReservation(healthy)

	result, err := newSweeper(repo).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.ExpiredIDs, 1)
	assert.Equal(t, healthy.UUID, result.ExpiredIDs[0])
	assert.Equal(t, 3, repo.Credits(3, 10))
}
