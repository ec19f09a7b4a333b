// Package timezone resolves teacher-configured IANA zones. Every
// wall-clock value in the scheduler (availability slots, requested
// lesson times) is interpreted in the owning teacher's zone.
package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to UTC for empty or unknown zones
// so a half-configured teacher profile never breaks booking.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseLocal interprets a "2006-01-02" date and "15:04" clock time as a
// single instant in the given zone.
func ParseLocal(date, clock, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, Location(tz))
}
