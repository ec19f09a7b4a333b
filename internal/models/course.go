package models

import "time"

// Course is the minimal catalog record the engine needs: who teaches it
// and how long one lesson lasts. Catalog browsing lives elsewhere.
type Course struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeacherID uint `gorm:"index" json:"teacher_id"`
	Teacher   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"teacher"`

	Title       string `gorm:"size:120;not null" json:"title"`
	DurationMin int    `gorm:"not null;default:60" json:"duration_min"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
