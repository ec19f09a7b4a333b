// Package bookingtest provides an in-memory booking.Repository for unit
// tests, mirroring the query semantics of the gorm implementation.
package bookingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/httperr"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

type accountKey struct {
	StudentID uint
	CourseID  uint
}

type Repo struct {
	mu sync.Mutex

	Users        map[uint]models.User
	Courses      map[uint]models.Course
	Slots        []models.AvailableSlot
	Reservations map[uuid.UUID]models.Reservation
	Accounts     map[accountKey]int
}

func NewRepo() *Repo {
	return &Repo{
		Users:        map[uint]models.User{},
		Courses:      map[uint]models.Course{},
		Reservations: map[uuid.UUID]models.Reservation{},
		Accounts:     map[accountKey]int{},
	}
}

func (f *Repo) AddUser(u models.User)          { f.Users[u.ID] = u }
func (f *Repo) AddCourse(c models.Course)      { f.Courses[c.ID] = c }
func (f *Repo) AddSlot(s models.AvailableSlot) { f.Slots = append(f.Slots, s) }

func (f *Repo) AddReservation(r models.Reservation) {
	f.Reservations[r.UUID] = r
}

func (f *Repo) SetCredits(studentID, courseID uint, n int) {
	f.Accounts[accountKey{studentID, courseID}] = n
}

func (f *Repo) Credits(studentID, courseID uint) int {
	return f.Accounts[accountKey{studentID, courseID}]
}

// -------- Users / Courses --------

func (f *Repo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.Users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

func (f *Repo) GetCourse(_ context.Context, id uint) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Courses[id]
	if !ok {
		return nil, httperr.ErrNotFound("course_not_found")
	}
	return &c, nil
}

// -------- Availability --------

func (f *Repo) GetTeacherSlots(_ context.Context, teacherID uint, weekday int) ([]models.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailableSlot
	for _, s := range f.Slots {
		if s.TeacherID == teacherID && s.Weekday == weekday {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *Repo) ListTeacherSchedule(_ context.Context, teacherID uint) ([]models.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailableSlot
	for _, s := range f.Slots {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *Repo) ReplaceTeacherSchedule(_ context.Context, teacherID uint, slots []models.AvailableSlot) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.AvailableSlot
	deleted := 0
	for _, s := range f.Slots {
		if s.TeacherID == teacherID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	f.Slots = append(kept, slots...)
	return len(slots), deleted, nil
}

// -------- Reservation (create / conflict) --------

func (f *Repo) LockTeacherCalendar(context.Context, uint) error { return nil }

// CreateReservation enforces the same backstop as the store's partial
// unique index on (teacher_id, reserve_time): an identical start time
// against a non-cancelled row is rejected as occupied.
func (f *Repo) CreateReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.Reservations {
		if other.TeacherID == r.TeacherID &&
			other.ReserveTime.Equal(r.ReserveTime) &&
			other.TeacherStatus != string(booking.StatusCancelled) {
			return httperr.ErrBusiness("slot_occupied")
		}
	}
	f.Reservations[r.UUID] = *r
	return nil
}

func (f *Repo) ListBlockingReservations(_ context.Context, teacherID uint, start, end time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.Reservations {
		if r.TeacherID != teacherID {
			continue
		}
		if r.TeacherStatus != string(booking.StatusPending) &&
			r.TeacherStatus != string(booking.StatusReserved) {
			continue
		}
		if booking.Overlaps(start, end, r.ReserveTime, r.EndTime()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Repo) ListUpcomingActiveReservations(_ context.Context, teacherID uint, from time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.Reservations {
		if r.TeacherID != teacherID {
			continue
		}
		if r.TeacherStatus == string(booking.StatusCancelled) {
			continue
		}
		if r.ReserveTime.Before(from) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReserveTime.Before(out[j].ReserveTime)
	})
	return out, nil
}

// -------- Reservation (state change) --------

func (f *Repo) GetReservation(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.Reservations[id]
	if !ok {
		return nil, httperr.ErrNotFound("reservation_not_found")
	}
	return &r, nil
}

// GetReservationForUpdate matches the locked read's signature; the lock
// itself is not emulated. Tests model a lost race by mutating the row
// before this read runs, which is exactly what the real lock enforces.
func (f *Repo) GetReservationForUpdate(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return f.GetReservation(ctx, id)
}

func (f *Repo) UpdateReservation(_ context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reservations[r.UUID] = *r
	return nil
}

func (f *Repo) ListReservationsForUser(_ context.Context, userID uint, role string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.Reservations {
		if role == models.RoleTeacher && r.TeacherID != userID {
			continue
		}
		if role != models.RoleTeacher && r.StudentID != userID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReserveTime.Before(out[j].ReserveTime)
	})
	return out, nil
}

// -------- Lesson credits --------

func (f *Repo) ReserveLessonCredit(_ context.Context, studentID, courseID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := accountKey{studentID, courseID}
	if f.Accounts[key] <= 0 {
		return 0, httperr.ErrBusiness("insufficient_lessons")
	}
	f.Accounts[key]--
	return f.Accounts[key], nil
}

func (f *Repo) RefundLessonCredit(_ context.Context, studentID, courseID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := accountKey{studentID, courseID}
	if _, ok := f.Accounts[key]; !ok {
		return 0, httperr.ErrNotFound("lesson_account_not_found")
	}
	f.Accounts[key]++
	return f.Accounts[key], nil
}

// -------- Expiration --------

func (f *Repo) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.Reservations {
		if r.TeacherStatus != string(booking.StatusPending) {
			continue
		}
		if r.ResponseDeadline == nil || !r.ResponseDeadline.Before(now) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *Repo) ExpireReservation(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.Reservations[id]
	if !ok || r.TeacherStatus != string(booking.StatusPending) {
		return false, nil
	}
	r.TeacherStatus = string(booking.StatusCancelled)
	r.StudentStatus = string(booking.StatusCancelled)
	r.ResponseDeadline = nil
	f.Reservations[id] = r
	return true, nil
}

// -------- Atomicity --------

// Transaction runs fn against the same store. Rollback is not emulated;
// tests that exercise failure paths arrange for the failing step to come
// before any write.
func (f *Repo) Transaction(_ context.Context, fn func(booking.Repository) error) error {
	return fn(f)
}

var _ booking.Repository = (*Repo)(nil)
