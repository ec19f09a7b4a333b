package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
)

func TestCancelByStudent(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")
	require.Equal(t, 4, repo.Credits(studentID, courseID))

	uc := NewCancelReservation(repo, newDispatcher())
	out, refunded, err := uc.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       studentID,
		Reason:        "conflict with school",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, refunded)
	assert.Equal(t, string(domain.StatusCancelled), out.TeacherStatus)
	assert.Equal(t, string(domain.StatusCancelled), out.StudentStatus)
	assert.Equal(t, 5, repo.Credits(studentID, courseID))
}

func TestCancelByTeacherAfterConfirm(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	respond := NewRespondReservation(repo, newDispatcher())
	_, err := respond.Execute(context.Background(), RespondReservationInput{
		ReservationID: res.UUID,
		TeacherID:     teacherID,
		Action:        ActionConfirm,
	})
	require.NoError(t, err)

	uc := NewCancelReservation(repo, newDispatcher())
	out, _, err := uc.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       teacherID,
		Reason:        "sick",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), out.TeacherStatus)
	assert.Equal(t, string(domain.StatusCancelled), out.StudentStatus)
}

func TestCancelAfterCompletion(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	respond := NewRespondReservation(repo, newDispatcher())
	_, err := respond.Execute(context.Background(), RespondReservationInput{
		ReservationID: res.UUID,
		TeacherID:     teacherID,
		Action:        ActionConfirm,
	})
	require.NoError(t, err)

	complete := NewCompleteReservation(repo, newDispatcher())
	_, err = complete.Execute(context.Background(), CompleteReservationInput{
		ReservationID: res.UUID,
		ActorID:       teacherID,
	})
	require.NoError(t, err)

	uc := NewCancelReservation(repo, newDispatcher())
	_, _, err = uc.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       studentID,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCancelByStranger(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	uc := NewCancelReservation(repo, newDispatcher())
	_, _, err := uc.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       42,
	})
	assert.True(t, httperr.IsForbidden(err))
}

// A cancelled booking frees its window for new requests.
func TestCancelledBookingDoesNotBlock(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	uc := NewCancelReservation(repo, newDispatcher())
	_, _, err := uc.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       studentID,
	})
	require.NoError(t, err)

	again := createAt(t, repo, "10:00")
	assert.Equal(t, string(domain.StatusPending), again.TeacherStatus)
}
