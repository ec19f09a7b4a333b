package audit

import "go.uber.org/zap"

// Reservation lifecycle actions.
const (
	ActionReservationCreated   = "reservation_created"
	ActionReservationConfirmed = "reservation_confirmed"
	ActionReservationRejected  = "reservation_rejected"
	ActionReservationCompleted = "reservation_completed"
	ActionReservationCancelled = "reservation_cancelled"
	ActionReservationExpired   = "reservation_expired"
	ActionScheduleUpdated      = "schedule_updated"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink is where dispatched events end up; the gorm-backed Logger in
// production, a stub in tests.
type Sink interface {
	Log(userID *uint, action, entity, entityID string, metadata any) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks the request path: when the queue is full the
// event is dropped, not the API call.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
