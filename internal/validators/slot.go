package validators

import (
	"regexp"

	"github.com/aulaflex/tutor-scheduler/internal/httperr"
)

// Strict 24-hour clock with minute precision. "9:00" and "24:00" are
// rejected on purpose.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func IsTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

type SlotInput struct {
	Weekday   int
	StartTime string
	EndTime   string
}

// ValidateSlots checks the shape of a full schedule submission and
// collects every problem instead of stopping at the first, so the caller
// can fix a whole form in one round trip.
func ValidateSlots(slots []SlotInput) error {
	var fields []httperr.FieldError

	for i, s := range slots {
		if s.Weekday < 0 || s.Weekday > 6 {
			fields = append(fields, httperr.FieldError{
				Index: i, Field: "weekday", Message: "must be between 0 (Sunday) and 6 (Saturday)",
			})
		}
		startOK := IsTimeOfDay(s.StartTime)
		endOK := IsTimeOfDay(s.EndTime)
		if !startOK {
			fields = append(fields, httperr.FieldError{
				Index: i, Field: "start_time", Message: "must be HH:MM in 24-hour format",
			})
		}
		if !endOK {
			fields = append(fields, httperr.FieldError{
				Index: i, Field: "end_time", Message: "must be HH:MM in 24-hour format",
			})
		}
		if startOK && endOK && s.StartTime >= s.EndTime {
			fields = append(fields, httperr.FieldError{
				Index: i, Field: "start_time", Message: "must be before end_time",
			})
		}
	}

	if len(fields) > 0 {
		return httperr.ValidationError{Fields: fields}
	}
	return nil
}
