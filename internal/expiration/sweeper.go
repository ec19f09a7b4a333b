package expiration

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	domain "github.com/aulaflex/tutor-scheduler/internal/domain/booking"
	"github.com/aulaflex/tutor-scheduler/internal/models"
)

const lockKey = "tutor-scheduler:expiration-sweep"

type SweepResult struct {
	Count      int
	ExpiredIDs []uuid.UUID
}

// Sweeper cancels pending reservations whose teacher response deadline
// has elapsed. It runs off a ticker, independent of request traffic, so
// expiration happens even for bookings nobody queries again.
type Sweeper struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	logger   *zap.Logger
	locker   *redis.Client // nil: single-instance deployment, no lock
	stopChan chan struct{}
}

func NewSweeper(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
	locker *redis.Client,
) *Sweeper {
	return &Sweeper{
		repo:     repo,
		audit:    auditDispatcher,
		logger:   logger,
		locker:   locker,
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting expiration sweeper",
		zap.Duration("interval", domain.SweepInterval),
	)
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("stopping expiration sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// First pass right away, so a restart does not delay expirations by
	// a full interval.
	s.sweepAndLog(ctx)

	ticker := time.NewTicker(domain.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepAndLog(ctx)
		case <-s.stopChan:
			s.logger.Info("expiration sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("expiration sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	result, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return
	}
	if result.Count > 0 {
		s.logger.Info("expired pending reservations",
			zap.Int("count", result.Count),
		)
	}
}

// Sweep expires every timed-out pending reservation it can, one row per
// transaction. A row that fails is logged and skipped; the next interval
// retries it. Safe to run concurrently with itself: the conditional
// status update makes the loser of any race a no-op.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepResult, error) {
	if s.locker != nil {
		ok, err := s.locker.SetNX(ctx, lockKey, 1, domain.SweepInterval).Result()
		if err != nil {
			return nil, err
		}
		if !ok {
			// Another instance holds the sweep.
			return &SweepResult{}, nil
		}
		defer s.locker.Del(ctx, lockKey)
	}

	rows, err := s.repo.ListExpiredPending(ctx, time.Now(), domain.SweepBatchLimit)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, row := range rows {
		expired, err := s.expireOne(ctx, row)
		if err != nil {
			s.logger.Warn("failed to expire reservation",
				zap.String("reservation", row.UUID.String()),
				zap.Error(err),
			)
			continue
		}
		if expired {
			result.Count++
			result.ExpiredIDs = append(result.ExpiredIDs, row.UUID)
		}
	}

	return result, nil
}

func (s *Sweeper) expireOne(ctx context.Context, row models.Reservation) (bool, error) {
	expired := false

	err := s.repo.Transaction(ctx, func(tx domain.Repository) error {
		ok, err := tx.ExpireReservation(ctx, row.UUID)
		if err != nil {
			return err
		}
		if !ok {
			// The teacher answered, or another sweep got here first.
			return nil
		}

		if _, err := tx.RefundLessonCredit(ctx, row.StudentID, row.CourseID); err != nil {
			return err
		}

		expired = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if expired {
		s.audit.Dispatch(audit.Event{
			Action:   audit.ActionReservationExpired,
			Entity:   "reservation",
			EntityID: row.UUID.String(),
		})
	}

	return expired, nil
}
