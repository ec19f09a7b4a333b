package schedule

import (
	"context"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

// Execute returns the teacher's full slot set ordered by weekday then
// start time. An empty schedule is a valid answer.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	teacherID uint,
) ([]models.AvailableSlot, error) {
	return uc.repo.ListTeacherSchedule(ctx, teacherID)
}
