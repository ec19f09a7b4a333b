package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type Repository interface {
	// -------- Users / Courses --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetCourse(
		ctx context.Context,
		id uint,
	) (*models.Course, error)

	// -------- Availability --------
	GetTeacherSlots(
		ctx context.Context,
		teacherID uint,
		weekday int,
	) ([]models.AvailableSlot, error)

	ListTeacherSchedule(
		ctx context.Context,
		teacherID uint,
	) ([]models.AvailableSlot, error)

	ReplaceTeacherSchedule(
		ctx context.Context,
		teacherID uint,
		slots []models.AvailableSlot,
	) (created int, deleted int, err error)

	// -------- Reservation (create / conflict) --------
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// LockTeacherCalendar serializes booking creation for one teacher.
	// Must be called inside Transaction; the lock is released at commit
	// or rollback.
	LockTeacherCalendar(
		ctx context.Context,
		teacherID uint,
	) error

	// ListBlockingReservations returns the teacher's pending and
	// reserved bookings intersecting [start,end). Inside a transaction
	// the rows are locked so concurrent creations serialize.
	ListBlockingReservations(
		ctx context.Context,
		teacherID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	// ListUpcomingActiveReservations returns the teacher's future
	// non-cancelled bookings, for availability-edit dry runs.
	ListUpcomingActiveReservations(
		ctx context.Context,
		teacherID uint,
		from time.Time,
	) ([]models.Reservation, error)

	// -------- Reservation (state change) --------
	GetReservation(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	// GetReservationForUpdate loads one reservation holding a row lock.
	// Every status transition must read through this, inside
	// Transaction, so two concurrent transitions on the same row
	// serialize instead of overwriting each other.
	GetReservationForUpdate(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	ListReservationsForUser(
		ctx context.Context,
		userID uint,
		role string,
	) ([]models.Reservation, error)

	// -------- Lesson credits --------
	ReserveLessonCredit(
		ctx context.Context,
		studentID uint,
		courseID uint,
	) (remaining int, err error)

	RefundLessonCredit(
		ctx context.Context,
		studentID uint,
		courseID uint,
	) (remaining int, err error)

	// -------- Expiration --------
	ListExpiredPending(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.Reservation, error)

	// ExpireReservation cancels both sides of one reservation, keyed on
	// the row still being teacher-pending. Returns false when a racing
	// transition already moved it.
	ExpireReservation(
		ctx context.Context,
		id uuid.UUID,
	) (bool, error)

	// -------- Atomicity --------
	// Transaction runs fn against a transaction-bound repository;
	// everything fn does commits or rolls back together.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
