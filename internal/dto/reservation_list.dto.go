package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReservationListDTO struct {
	UUID             uuid.UUID  `json:"uuid"`
	CourseTitle      string     `json:"course_title"`
	ReserveTime      time.Time  `json:"reserve_time"`
	EndTime          time.Time  `json:"end_time"`
	TeacherStatus    string     `json:"teacher_status"`
	StudentStatus    string     `json:"student_status"`
	ResponseDeadline *time.Time `json:"response_deadline"`
}
