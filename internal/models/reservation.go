package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is one concrete lesson request. Teacher and student each
// carry their own status so the two perspectives on the same lesson can
// advance independently (confirmation vs completion acknowledgement).
type Reservation struct {
	UUID uuid.UUID `gorm:"type:uuid;primaryKey" json:"uuid"`

	CourseID uint   `gorm:"index" json:"course_id"`
	Course   Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"course"`

	// The partial unique index is the store-level backstop for two
	// commits racing into the identical start time: the loser's insert
	// fails and is surfaced as slot_occupied. Cancelled rows stay out
	// of the index so a freed window can be rebooked.
	TeacherID uint `gorm:"index;uniqueIndex:udx_reservation_window,where:teacher_status <> 'cancelled'" json:"teacher_id"`
	Teacher   User `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"teacher"`

	StudentID uint `gorm:"index" json:"student_id"`
	Student   User `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student"`

	ReserveTime time.Time `gorm:"index;uniqueIndex:udx_reservation_window" json:"reserve_time"`

	// Lesson length copied from the course at creation time, so editing
	// the course later never reshapes a committed booking.
	DurationMin int `gorm:"not null" json:"duration_min"`

	TeacherStatus string `gorm:"size:20;default:'pending'" json:"teacher_status"`
	StudentStatus string `gorm:"size:20;default:'pending'" json:"student_status"`

	// Set only while TeacherStatus is pending.
	ResponseDeadline *time.Time `json:"response_deadline"`

	// Set only when the teacher actively rejects; an expired booking
	// keeps this empty.
	RejectionReason string `gorm:"size:255" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) EndTime() time.Time {
	return r.ReserveTime.Add(time.Duration(r.DurationMin) * time.Minute)
}
