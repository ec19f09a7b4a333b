package models

import "time"

// LessonAccount tracks how many purchased lesson credits a student still
// holds for one course. Purchases are recorded elsewhere; the booking
// engine only debits and refunds.
type LessonAccount struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint `gorm:"index:idx_lesson_account,unique" json:"student_id"`
	CourseID  uint `gorm:"index:idx_lesson_account,unique" json:"course_id"`

	RemainingLessons int `gorm:"not null;default:0" json:"remaining_lessons"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
