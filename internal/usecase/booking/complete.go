package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type CompleteReservationInput struct {
	ReservationID uuid.UUID
	ActorID       uint
}

type CompleteReservationOutput struct {
	Reservation      *models.Reservation
	IsFullyCompleted bool
}

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	in CompleteReservationInput,
) (*CompleteReservationOutput, error) {

	var res *models.Reservation
	var side domain.Side
	var fully, already bool

	// The locking read serializes against the other party completing
	// concurrently; each side's write lands on the other's result.
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		res, err = tx.GetReservationForUpdate(ctx, in.ReservationID)
		if err != nil {
			return err
		}

		switch in.ActorID {
		case res.TeacherID:
			side = domain.SideTeacher
		case res.StudentID:
			side = domain.SideStudent
		default:
			return httperr.ErrForbidden("not_reservation_party")
		}

		fully, already, err = domain.Complete(res, side)
		if err != nil {
			return err
		}

		// A repeated completion by the same side changed nothing; skip
		// the write and report the current state.
		if already {
			return nil
		}
		return tx.UpdateReservation(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	if !already {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.ActorID,
			Action:   audit.ActionReservationCompleted,
			Entity:   "reservation",
			EntityID: res.UUID.String(),
			Metadata: map[string]string{"side": string(side)},
		})
	}

	return &CompleteReservationOutput{
		Reservation:      res,
		IsFullyCompleted: fully,
	}, nil
}
