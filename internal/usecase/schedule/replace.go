package schedule

import (
	"context"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/models"
	"github.com/aulaflex/tutor-scheduler/internal/validators"
)

type SlotConfig struct {
	Weekday   int
	StartTime string
	EndTime   string
	IsActive  bool
}

type ReplaceScheduleOutput struct {
	Slots   []models.AvailableSlot
	Created int
	Deleted int
}

// ReplaceSchedule swaps a teacher's whole weekly availability in one
// shot. Either every submitted slot is valid and the set is replaced, or
// nothing is written.
type ReplaceSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReplaceSchedule {
	return &ReplaceSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReplaceSchedule) Execute(
	ctx context.Context,
	teacherID uint,
	slots []SlotConfig,
) (*ReplaceScheduleOutput, error) {

	inputs := make([]validators.SlotInput, len(slots))
	for i, s := range slots {
		inputs[i] = validators.SlotInput{
			Weekday:   s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}
	if err := validators.ValidateSlots(inputs); err != nil {
		return nil, err
	}

	toCreate := make([]models.AvailableSlot, len(slots))
	for i, s := range slots {
		toCreate[i] = models.AvailableSlot{
			TeacherID: teacherID,
			Weekday:   s.Weekday,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			IsActive:  s.IsActive,
		}
	}

	created, deleted, err := uc.repo.ReplaceTeacherSchedule(ctx, teacherID, toCreate)
	if err != nil {
		return nil, err
	}

	stored, err := uc.repo.ListTeacherSchedule(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &teacherID,
		Action:   audit.ActionScheduleUpdated,
		Entity:   "schedule",
		Metadata: map[string]int{"created": created, "deleted": deleted},
	})

	return &ReplaceScheduleOutput{
		Slots:   stored,
		Created: created,
		Deleted: deleted,
	}, nil
}
