package booking

import (
	"context"
	"time"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/timezone"
	"github.com/aulaflex/tutor-scheduler/internal/validators"
)

type CheckScheduleConflictInput struct {
	TeacherID uint
	Weekday   int
	StartTime string
	EndTime   string
}

// CheckScheduleConflict is the dry run a teacher calls before shrinking
// availability: which upcoming bookings would a new weekly window clash
// with. Pure read, no side effects.
type CheckScheduleConflict struct {
	repo domain.Repository
}

func NewCheckScheduleConflict(repo domain.Repository) *CheckScheduleConflict {
	return &CheckScheduleConflict{repo: repo}
}

func (uc *CheckScheduleConflict) Execute(
	ctx context.Context,
	in CheckScheduleConflictInput,
) (*domain.ConflictReport, error) {

	if err := validators.ValidateSlots([]validators.SlotInput{{
		Weekday:   in.Weekday,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}}); err != nil {
		return nil, err
	}

	teacher, err := uc.repo.GetUserByID(ctx, in.TeacherID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(teacher.Timezone)

	// Past lessons cannot conflict with anything anymore.
	rows, err := uc.repo.ListUpcomingActiveReservations(ctx, in.TeacherID, time.Now())
	if err != nil {
		return nil, err
	}

	report := &domain.ConflictReport{Conflicts: []domain.Conflict{}}

	for _, r := range rows {
		start := r.ReserveTime.In(loc)
		if int(start.Weekday()) != in.Weekday {
			continue
		}

		end := start.Add(time.Duration(r.DurationMin) * time.Minute)
		if !domain.OverlapsClock(
			in.StartTime, in.EndTime,
			start.Format("15:04"), end.Format("15:04"),
		) {
			continue
		}

		report.Conflicts = append(report.Conflicts, domain.Conflict{
			ReservationUUID: r.UUID,
			ReserveTime:     r.ReserveTime,
			EndTime:         r.EndTime(),
			TeacherStatus:   r.TeacherStatus,
			StudentStatus:   r.StudentStatus,
		})
	}

	report.HasConflict = len(report.Conflicts) > 0
	return report, nil
}
