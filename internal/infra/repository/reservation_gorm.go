package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Users / Courses
// --------------------------------------------------

func (r *ReservationGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *ReservationGormRepository) GetCourse(
	ctx context.Context,
	id uint,
) (*models.Course, error) {

	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("course_not_found")
		}
		return nil, err
	}
	return &course, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) GetTeacherSlots(
	ctx context.Context,
	teacherID uint,
	weekday int,
) ([]models.AvailableSlot, error) {

	var slots []models.AvailableSlot
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND weekday = ?", teacherID, weekday).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ReservationGormRepository) ListTeacherSchedule(
	ctx context.Context,
	teacherID uint,
) ([]models.AvailableSlot, error) {

	var slots []models.AvailableSlot
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ReplaceTeacherSchedule swaps the full slot set in one transaction so a
// reader never observes a half-written schedule.
func (r *ReservationGormRepository) ReplaceTeacherSchedule(
	ctx context.Context,
	teacherID uint,
	slots []models.AvailableSlot,
) (created int, deleted int, err error) {

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("teacher_id = ?", teacherID).
			Delete(&models.AvailableSlot{})
		if res.Error != nil {
			return res.Error
		}
		deleted = int(res.RowsAffected)

		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		created = len(slots)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, deleted, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_occupied")
		}
		return err
	}
	return nil
}

// LockTeacherCalendar takes a transaction-scoped advisory lock keyed on
// the teacher, so two creations into the same empty window cannot both
// pass the overlap scan: FOR UPDATE on zero rows locks nothing.
func (r *ReservationGormRepository) LockTeacherCalendar(
	ctx context.Context,
	teacherID uint,
) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(teacherID)).Error
}

func (r *ReservationGormRepository) ListBlockingReservations(
	ctx context.Context,
	teacherID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"teacher_id = ? AND teacher_status IN ('pending', 'reserved') AND reserve_time < ? AND reserve_time + (duration_min * interval '1 minute') > ?",
			teacherID,
			end,
			start,
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReservationGormRepository) ListUpcomingActiveReservations(
	ctx context.Context,
	teacherID uint,
	from time.Time,
) ([]models.Reservation, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_id = ? AND teacher_status <> 'cancelled' AND reserve_time >= ?",
			teacherID,
			from,
		).
		Order("reserve_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("uuid = ?", id).
		First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found")
		}
		return nil, err
	}
	return &res, nil
}

// GetReservationForUpdate takes the row lock every status transition
// serializes on. Outside a transaction the lock is released immediately,
// so callers must go through Transaction.
func (r *ReservationGormRepository) GetReservationForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uuid = ?", id).
		First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("reservation_not_found")
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	// Save writes every column, including a cleared response_deadline.
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationGormRepository) ListReservationsForUser(
	ctx context.Context,
	userID uint,
	role string,
) ([]models.Reservation, error) {

	column := "student_id"
	if role == models.RoleTeacher {
		column = "teacher_id"
	}

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where(column+" = ?", userID).
		Order("reserve_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Lesson credits
// --------------------------------------------------

func (r *ReservationGormRepository) ReserveLessonCredit(
	ctx context.Context,
	studentID uint,
	courseID uint,
) (int, error) {

	res := r.db.WithContext(ctx).
		Model(&models.LessonAccount{}).
		Where(
			"student_id = ? AND course_id = ? AND remaining_lessons > 0",
			studentID,
			courseID,
		).
		UpdateColumn("remaining_lessons", gorm.Expr("remaining_lessons - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, httperr.ErrBusiness("insufficient_lessons")
	}

	return r.remainingLessons(ctx, studentID, courseID)
}

func (r *ReservationGormRepository) RefundLessonCredit(
	ctx context.Context,
	studentID uint,
	courseID uint,
) (int, error) {

	res := r.db.WithContext(ctx).
		Model(&models.LessonAccount{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		UpdateColumn("remaining_lessons", gorm.Expr("remaining_lessons + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// No account row means the credit was never debited here.
		return 0, httperr.ErrNotFound("lesson_account_not_found")
	}

	return r.remainingLessons(ctx, studentID, courseID)
}

func (r *ReservationGormRepository) remainingLessons(
	ctx context.Context,
	studentID uint,
	courseID uint,
) (int, error) {

	var account models.LessonAccount
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&account).Error; err != nil {
		return 0, err
	}
	return account.RemainingLessons, nil
}

// --------------------------------------------------
// Expiration
// --------------------------------------------------

func (r *ReservationGormRepository) ListExpiredPending(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.Reservation, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"teacher_status = 'pending' AND response_deadline IS NOT NULL AND response_deadline < ?",
			now,
		).
		Order("response_deadline ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ExpireReservation is keyed on the row still being teacher-pending, so
// a racing sweep or a just-in-time confirmation makes this a no-op.
func (r *ReservationGormRepository) ExpireReservation(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("uuid = ? AND teacher_status = 'pending'", id).
		Updates(map[string]any{
			"teacher_status":    string(domain.StatusCancelled),
			"student_status":    string(domain.StatusCancelled),
			"response_deadline": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Atomicity
// --------------------------------------------------

func (r *ReservationGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
