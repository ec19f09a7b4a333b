package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
)

func TestCreateReservationInsideAvailability(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	res, remaining, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), res.TeacherStatus)
	assert.Equal(t, string(domain.StatusPending), res.StudentStatus)
	assert.Equal(t, 60, res.DurationMin)
	assert.Equal(t, 4, remaining)

	require.NotNil(t, res.ResponseDeadline)
	assert.WithinDuration(t,
		time.Now().Add(domain.TeacherResponseWindow),
		*res.ResponseDeadline,
		time.Minute,
	)

	stored, err := repo.GetReservation(context.Background(), res.UUID)
	require.NoError(t, err)
	assert.Equal(t, res.ReserveTime.Unix(), stored.ReserveTime.Unix())
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	repo := newRepo()
	createAt(t, repo, "10:00")

	uc := NewCreateReservation(repo, newDispatcher())
	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "10:30",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_occupied"))

	// The failed attempt consumed nothing.
	assert.Equal(t, 4, repo.Credits(studentID, courseID))
}

func TestCreateReservationTouchingBookingAllowed(t *testing.T) {
	repo := newRepo()
	createAt(t, repo, "10:00")

	// 11:00 starts exactly where the first lesson ends.
	res := createAt(t, repo, "11:00")
	assert.Equal(t, string(domain.StatusPending), res.TeacherStatus)
}

func TestCreateReservationOutsideAvailability(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "13:00",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateReservationOverhangingSlotEdge(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	// 11:30 + 60min pokes past the 12:00 slot end.
	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "11:30",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateReservationTooSoon(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	soon := time.Now().UTC().Add(2 * time.Hour)
	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      soon.Format("2006-01-02"),
		Time:      soon.Format("15:04"),
	})
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateReservationWithoutCredits(t *testing.T) {
	repo := newRepo()
	repo.SetCredits(studentID, courseID, 0)
	uc := NewCreateReservation(repo, newDispatcher())

	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "insufficient_lessons"))

	list, err := repo.ListReservationsForUser(context.Background(), studentID, "student")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateReservationUnknownCourse(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  999,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "10:00",
	})
	assert.True(t, httperr.IsNotFound(err))
}

func TestCreateReservationBadDate(t *testing.T) {
	repo := newRepo()
	uc := NewCreateReservation(repo, newDispatcher())

	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      "not-a-date",
		Time:      "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

// Even when the blocking scan sees nothing (the view a second concurrent
// transaction gets before the first commits), the insert itself rejects a
// duplicate start time against a live booking.
func TestCreateReservationDuplicateStartBackstop(t *testing.T) {
	repo := newRepo()
	createAt(t, repo, "10:00")

	w := &blindRepo{Repo: repo}
	uc := NewCreateReservation(w, newDispatcher())
	_, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_occupied"))

	// Exactly one booking holds the window.
	list, err := repo.ListReservationsForUser(context.Background(), studentID, "student")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// Overlap law: after any sequence of creations, no two non-cancelled
// bookings of the teacher intersect.
func TestCreateReservationOverlapLaw(t *testing.T) {
	repo := newRepo()
	repo.SetCredits(studentID, courseID, 20)
	uc := NewCreateReservation(repo, newDispatcher())

	times := []string{"09:00", "09:30", "10:00", "10:45", "11:00", "11:15"}
	for _, hhmm := range times {
		uc.Execute(context.Background(), CreateReservationInput{
			StudentID: studentID,
			CourseID:  courseID,
			Date:      lessonDate().Format("2006-01-02"),
			Time:      hhmm,
		})
	}

	list, err := repo.ListReservationsForUser(context.Background(), studentID, "student")
	require.NoError(t, err)

	for i := range list {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			assert.False(t,
				domain.Overlaps(a.ReserveTime, a.EndTime(), b.ReserveTime, b.EndTime()),
				"%s and %s overlap", a.ReserveTime, b.ReserveTime,
			)
		}
	}
}
