package booking

import (
	"time"

	"github.com/aulaflex/tutor-scheduler/internal/models"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints (10:00-11:00 followed by 11:00-12:00)
// do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// OverlapsClock is the same test over "HH:MM" wall-clock strings. The
// fixed zero-padded format makes lexicographic order equal to time order.
func OverlapsClock(s1, e1, s2, e2 string) bool {
	return s1 < e2 && e1 > s2
}

// SlotContains reports whether an active slot fully contains [start,end).
func SlotContains(slot models.AvailableSlot, start, end string) bool {
	if !slot.IsActive {
		return false
	}
	return slot.StartTime <= start && end <= slot.EndTime
}

// WithinAvailability: true iff one of the teacher's active slots for the
// weekday fully contains the candidate window. Overlapping slots are
// allowed to coexist; containment by any single one is enough.
func WithinAvailability(slots []models.AvailableSlot, weekday int, start, end string) bool {
	for _, slot := range slots {
		if slot.Weekday != weekday {
			continue
		}
		if SlotContains(slot, start, end) {
			return true
		}
	}
	return false
}
