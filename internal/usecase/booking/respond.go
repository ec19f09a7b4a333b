package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

const (
	ActionConfirm = "confirm"
	ActionReject  = "reject"
)

type RespondReservationInput struct {
	ReservationID uuid.UUID
	TeacherID     uint
	Action        string
	Reason        string
}

type RespondReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRespondReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RespondReservation {
	return &RespondReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RespondReservation) Execute(
	ctx context.Context,
	in RespondReservationInput,
) (*models.Reservation, error) {

	if in.Action != ActionConfirm && in.Action != ActionReject {
		return nil, httperr.ErrBusiness("invalid_action")
	}

	var res *models.Reservation

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// Locked read: a confirm racing the expiration sweep waits for
		// the sweep's commit and then sees the cancelled row.
		var err error
		res, err = tx.GetReservationForUpdate(ctx, in.ReservationID)
		if err != nil {
			return err
		}

		if res.TeacherID != in.TeacherID {
			return httperr.ErrForbidden("not_reservation_teacher")
		}

		if in.Action == ActionConfirm {
			if err := domain.Confirm(res); err != nil {
				return err
			}
			return tx.UpdateReservation(ctx, res)
		}

		if err := domain.Reject(res, in.Reason); err != nil {
			return err
		}
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}

		// Rejection gives the lesson credit back, in the same unit.
		_, err = tx.RefundLessonCredit(ctx, res.StudentID, res.CourseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionReservationConfirmed
	if in.Action == ActionReject {
		action = audit.ActionReservationRejected
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TeacherID,
		Action:   action,
		Entity:   "reservation",
		EntityID: res.UUID.String(),
	})

	return res, nil
}
