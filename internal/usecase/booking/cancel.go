package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type CancelReservationInput struct {
	ReservationID uuid.UUID
	ActorID       uint
	Reason        string
}

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelReservationInput,
) (*models.Reservation, int, error) {

	var res *models.Reservation
	refunded := 0

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		res, err = tx.GetReservationForUpdate(ctx, in.ReservationID)
		if err != nil {
			return err
		}

		if in.ActorID != res.TeacherID && in.ActorID != res.StudentID {
			return httperr.ErrForbidden("not_reservation_party")
		}

		if err := domain.Cancel(res, in.Reason); err != nil {
			return err
		}
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}

		if _, err := tx.RefundLessonCredit(ctx, res.StudentID, res.CourseID); err != nil {
			return err
		}
		refunded = 1
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   audit.ActionReservationCancelled,
		Entity:   "reservation",
		EntityID: res.UUID.String(),
	})

	return res, refunded, nil
}
