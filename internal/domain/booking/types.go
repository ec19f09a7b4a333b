package booking

import (
	"time"

	"github.com/google/uuid"
)

// Conflict describes one existing reservation intersecting a candidate
// time window. Callers get every conflict, not just the first.
type Conflict struct {
	ReservationUUID uuid.UUID `json:"reservation_uuid"`
	ReserveTime     time.Time `json:"reserve_time"`
	EndTime         time.Time `json:"end_time"`
	TeacherStatus   string    `json:"teacher_status"`
	StudentStatus   string    `json:"student_status"`
}

type ConflictReport struct {
	HasConflict bool       `json:"has_conflict"`
	Conflicts   []Conflict `json:"conflicts"`
}
