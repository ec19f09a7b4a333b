package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/domain/booking/bookingtest"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

const (
	teacherID = 1
	studentID = 2
	courseID  = 10
)

type nopSink struct{}

func (nopSink) Log(*uint, string, string, string, any) error { return nil }

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zap.NewNop())
}

// lessonDate is a date a week out, so it always clears the advance
// minimum; the availability slot is created for its weekday.
func lessonDate() time.Time {
	return time.Now().UTC().AddDate(0, 0, 7)
}

// newRepo seeds a teacher with a 09:00-12:00 slot on lessonDate's
// weekday, a 60-minute course, and a student holding 5 credits.
func newRepo() *bookingtest.Repo {
	repo := bookingtest.NewRepo()

	repo.AddUser(models.User{ID: teacherID, Name: "Marina", Role: models.RoleTeacher, Timezone: "UTC"})
	repo.AddUser(models.User{ID: studentID, Name: "Pedro", Role: models.RoleStudent})
	repo.AddCourse(models.Course{ID: courseID, TeacherID: teacherID, Title: "Calculus", DurationMin: 60, Active: true})
	repo.AddSlot(models.AvailableSlot{
		TeacherID: teacherID,
		Weekday:   int(lessonDate().Weekday()),
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  true,
	})
	repo.SetCredits(studentID, courseID, 5)

	return repo
}

// raceRepo runs a hook just before the locked read, standing in for a
// competing transaction that took the lock first and committed. The
// transition under test must then observe that committed state.
type raceRepo struct {
	*bookingtest.Repo
	beforeLockedRead func()
}

func (w *raceRepo) GetReservationForUpdate(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	if w.beforeLockedRead != nil {
		hook := w.beforeLockedRead
		w.beforeLockedRead = nil
		hook()
	}
	return w.Repo.GetReservationForUpdate(ctx, id)
}

func (w *raceRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(w)
}

// blindRepo reports an empty blocking scan regardless of what is stored,
// the view two transactions get when both check a free window at once.
type blindRepo struct {
	*bookingtest.Repo
}

func (w *blindRepo) ListBlockingReservations(context.Context, uint, time.Time, time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (w *blindRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(w)
}

func createAt(t *testing.T, repo *bookingtest.Repo, hhmm string) *models.Reservation {
	t.Helper()

	uc := NewCreateReservation(repo, newDispatcher())
	res, _, err := uc.Execute(context.Background(), CreateReservationInput{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      lessonDate().Format("2006-01-02"),
		Time:      hhmm,
	})
	require.NoError(t, err)
	return res
}
