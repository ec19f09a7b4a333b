package booking

import (
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm moves both sides to reserved and drops the response deadline.
func Confirm(r *models.Reservation) error {
	if err := CanRespond(Status(r.TeacherStatus)); err != nil {
		return err
	}

	r.TeacherStatus = string(StatusReserved)
	r.StudentStatus = string(StatusReserved)
	r.ResponseDeadline = nil
	return nil
}

// Reject cancels both sides and records why the teacher declined.
func Reject(r *models.Reservation, reason string) error {
	if err := CanRespond(Status(r.TeacherStatus)); err != nil {
		return err
	}

	r.TeacherStatus = string(StatusCancelled)
	r.StudentStatus = string(StatusCancelled)
	r.ResponseDeadline = nil
	r.RejectionReason = reason
	return nil
}

// Complete marks one side done. Reports whether both sides are now
// completed and whether this call was a repeat (no state change).
func Complete(r *models.Reservation, side Side) (fullyCompleted bool, already bool, err error) {
	current := Status(r.TeacherStatus)
	if side == SideStudent {
		current = Status(r.StudentStatus)
	}

	already, err = CanComplete(current)
	if err != nil {
		return false, false, err
	}

	if !already {
		if side == SideTeacher {
			r.TeacherStatus = string(StatusCompleted)
		} else {
			r.StudentStatus = string(StatusCompleted)
		}
	}

	fullyCompleted = r.TeacherStatus == string(StatusCompleted) &&
		r.StudentStatus == string(StatusCompleted)
	return fullyCompleted, already, nil
}

// Cancel ends the reservation from either party. Cancellation is always
// symmetric: both sides move together.
func Cancel(r *models.Reservation, reason string) error {
	if err := CanCancel(Status(r.TeacherStatus), Status(r.StudentStatus)); err != nil {
		return err
	}

	r.TeacherStatus = string(StatusCancelled)
	r.StudentStatus = string(StatusCancelled)
	r.ResponseDeadline = nil
	r.RejectionReason = reason
	return nil
}

// Expire is the sweeper's transition for a booking the teacher never
// answered. The rejection reason stays empty so an expiry is
// distinguishable from an active reject.
func Expire(r *models.Reservation) {
	r.TeacherStatus = string(StatusCancelled)
	r.StudentStatus = string(StatusCancelled)
	r.ResponseDeadline = nil
}
