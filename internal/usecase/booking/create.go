package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
	"github.com/aulaflex/tutor-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	StudentID uint
	CourseID  uint

	Date string // "2006-01-02"
	Time string // "15:04"
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, int, error) {

	// 1. Course resolves the teacher and the lesson length.
	course, err := uc.repo.GetCourse(ctx, in.CourseID)
	if err != nil {
		return nil, 0, err
	}
	if !course.Active {
		return nil, 0, httperr.ErrBusiness("course_inactive")
	}

	teacher, err := uc.repo.GetUserByID(ctx, course.TeacherID)
	if err != nil {
		return nil, 0, err
	}

	// 2. Date and time in the teacher's timezone.
	start, err := timezone.ParseLocal(in.Date, in.Time, teacher.Timezone)
	if err != nil {
		return nil, 0, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 3. Advance-booking minimum (also rejects the past).
	now := timezone.NowIn(teacher.Timezone)
	if start.Before(now.Add(domain.MinAdvance)) {
		return nil, 0, httperr.ErrBusiness("too_soon")
	}

	end := start.Add(time.Duration(course.DurationMin) * time.Minute)
	if end.Day() != start.Day() {
		// A lesson never spans midnight; no weekly slot could contain it.
		return nil, 0, httperr.ErrBusiness("slot_unavailable")
	}

	// 4. The window must sit inside an active availability slot.
	weekday := int(start.Weekday())
	slots, err := uc.repo.GetTeacherSlots(ctx, course.TeacherID, weekday)
	if err != nil {
		return nil, 0, err
	}
	if !domain.WithinAvailability(slots, weekday, start.Format("15:04"), end.Format("15:04")) {
		return nil, 0, httperr.ErrBusiness("slot_unavailable")
	}

	// 5. Conflict check, credit debit and insert commit together. The
	// blocking-reservation scan locks the rows, so two concurrent
	// requests for the same window serialize here.
	var created *models.Reservation
	var remaining int

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// Row locks alone do not cover an empty window (nothing to
		// lock), so creation is serialized per teacher first.
		if err := tx.LockTeacherCalendar(ctx, course.TeacherID); err != nil {
			return err
		}

		blocking, err := tx.ListBlockingReservations(ctx, course.TeacherID, start, end)
		if err != nil {
			return err
		}
		for _, other := range blocking {
			if domain.Overlaps(start, end, other.ReserveTime, other.EndTime()) {
				return httperr.ErrBusiness("slot_occupied")
			}
		}

		remaining, err = tx.ReserveLessonCredit(ctx, in.StudentID, in.CourseID)
		if err != nil {
			return err
		}

		deadline := now.Add(domain.TeacherResponseWindow)
		res := &models.Reservation{
			UUID:             uuid.New(),
			CourseID:         course.ID,
			TeacherID:        course.TeacherID,
			StudentID:        in.StudentID,
			ReserveTime:      start,
			DurationMin:      course.DurationMin,
			TeacherStatus:    string(domain.InitialStatus()),
			StudentStatus:    string(domain.InitialStatus()),
			ResponseDeadline: &deadline,
		}

		if err := tx.CreateReservation(ctx, res); err != nil {
			return err
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StudentID,
		Action:   audit.ActionReservationCreated,
		Entity:   "reservation",
		EntityID: created.UUID.String(),
	})

	return created, remaining, nil
}
