package booking

import "github.com/aulaflex/tutor-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

// Each side of a reservation (teacher and student) carries its own
// Status. The two advance independently except for cancellation, which
// is always symmetric.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Side string

const (
	SideTeacher Side = "teacher"
	SideStudent Side = "student"
)

// ===============================
// Transition guards
// ===============================

// CanRespond: the teacher may confirm or reject only while their side is
// still pending.
func CanRespond(teacherStatus Status) error {
	if teacherStatus != StatusPending {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

// CanComplete reports whether a side may be marked completed. A side
// that already completed is a safe no-op, not an error.
func CanComplete(current Status) (already bool, err error) {
	switch current {
	case StatusReserved:
		return false, nil
	case StatusCompleted:
		return true, nil
	default:
		return false, httperr.ErrBusiness("invalid_status")
	}
}

// CanCancel: legal from pending or reserved, never once either side has
// completed, and never twice.
func CanCancel(teacherStatus, studentStatus Status) error {
	if teacherStatus == StatusCompleted || studentStatus == StatusCompleted {
		return httperr.ErrBusiness("invalid_status")
	}
	if teacherStatus == StatusCancelled || studentStatus == StatusCancelled {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
