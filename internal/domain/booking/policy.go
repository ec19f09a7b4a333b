package booking

import "time"

// Scheduling policy constants.
const (
	// A lesson must be requested at least this far in advance.
	MinAdvance = 24 * time.Hour

	// How long a teacher has to confirm or reject a new booking before
	// the sweeper cancels it.
	TeacherResponseWindow = 24 * time.Hour

	// Interval between expiration sweeps.
	SweepInterval = 5 * time.Minute

	// Upper bound on rows handled per sweep; leftovers wait for the
	// next interval.
	SweepBatchLimit = 100
)
