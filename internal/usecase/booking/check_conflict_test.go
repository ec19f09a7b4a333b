package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aulaflex/tutor-scheduler/internal/httperr"
)

func TestCheckScheduleConflictFindsOverlap(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	uc := NewCheckScheduleConflict(repo)
	report, err := uc.Execute(context.Background(), CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   int(lessonDate().Weekday()),
		StartTime: "10:30",
		EndTime:   "11:30",
	})
	require.NoError(t, err)

	assert.True(t, report.HasConflict)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, res.UUID, report.Conflicts[0].ReservationUUID)
}

func TestCheckScheduleConflictTouchingWindow(t *testing.T) {
	repo := newRepo()
	createAt(t, repo, "10:00")

	uc := NewCheckScheduleConflict(repo)
	report, err := uc.Execute(context.Background(), CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   int(lessonDate().Weekday()),
		StartTime: "11:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	assert.False(t, report.HasConflict)
	assert.Empty(t, report.Conflicts)
}

func TestCheckScheduleConflictIgnoresCancelled(t *testing.T) {
	repo := newRepo()
	res := createAt(t, repo, "10:00")

	cancel := NewCancelReservation(repo, newDispatcher())
	_, _, err := cancel.Execute(context.Background(), CancelReservationInput{
		ReservationID: res.UUID,
		ActorID:       studentID,
	})
	require.NoError(t, err)

	uc := NewCheckScheduleConflict(repo)
	report, err := uc.Execute(context.Background(), CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   int(lessonDate().Weekday()),
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	assert.False(t, report.HasConflict)
}

func TestCheckScheduleConflictOtherWeekday(t *testing.T) {
	repo := newRepo()
	createAt(t, repo, "10:00")

	uc := NewCheckScheduleConflict(repo)
	report, err := uc.Execute(context.Background(), CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   (int(lessonDate().Weekday()) + 1) % 7,
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)
	assert.False(t, report.HasConflict)
}

func TestCheckScheduleConflictValidatesInput(t *testing.T) {
	repo := newRepo()

	uc := NewCheckScheduleConflict(repo)
	_, err := uc.Execute(context.Background(), CheckScheduleConflictInput{
		TeacherID: teacherID,
		Weekday:   9,
		StartTime: "25:00",
		EndTime:   "26:00",
	})
	_, ok := httperr.IsValidation(err)
	assert.True(t, ok)
}
