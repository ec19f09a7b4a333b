package models

import "time"

// AvailableSlot is one recurring weekly availability window of a teacher.
// Times are wall-clock "HH:MM" strings interpreted in the teacher's
// configured timezone.
type AvailableSlot struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TeacherID uint `gorm:"index" json:"teacher_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsActive  bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AvailableSlot) TableName() string {
	return "teacher_available_slots"
}
