package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"go.uber.org/zap"
)

// sweepBatchSize bounds one pass; leftovers are picked up on the next tick.
const sweepBatchSize = 500

type SweepResult struct {
	Scanned int
	Expired int
	Skipped int
	Failed  int
}

// ExpiryService expires confirmed bookings whose check-out date has passed
// and gives their rooms back.
type ExpiryService interface {
	// Sweep runs one pass against the given clock reading. Each booking is
	// handled in its own transaction; a failure is logged and skipped.
	Sweep(ctx context.Context, now time.Time) (*SweepResult, error)
	// Run sweeps with the service clock.
	Run(ctx context.Context) error
}

type expiryService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewExpiryService(repo *repository.Repository, now func() time.Time, log *zap.Logger) ExpiryService {
	return &expiryService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "expiry")),
	}
}

func (s *expiryService) Run(ctx context.Context) error {
	_, err := s.Sweep(ctx, s.now().UTC())
	return err
}

func (s *expiryService) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	overdue, err := s.repo.Booking.FindOverdue(ctx, now, sweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("find overdue bookings: %w", err)
	}

	result := &SweepResult{Scanned: len(overdue)}
	for _, booking := range overdue {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		expired, err := s.expire(ctx, booking)
		if err != nil {
			result.Failed++
			s.log.Error("Failed to expire booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("room_id", booking.RoomID.String()))
			continue
		}
		if !expired {
			result.Skipped++
			continue
		}
		result.Expired++
	}

	if result.Scanned > 0 {
		s.log.Info("Expiry sweep finished",
			zap.Time("now", now),
			zap.Int("scanned", result.Scanned),
			zap.Int("expired", result.Expired),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed))
	}

	return result, nil
}

// expire reports false when the booking left the confirmed status before the
// sweep reached it, e.g. a concurrent cancel. The room is only released when
// this call made the transition.
func (s *expiryService) expire(ctx context.Context, booking *entity.Booking) (bool, error) {
	var expired bool
	err := s.repo.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		changed, err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed, entity.BookingStatusExpired)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		expired = true

		released, err := s.repo.Room.Release(ctx, booking.RoomID)
		if err != nil {
			return err
		}
		if !released {
			s.log.Warn("Room of expired booking no longer exists",
				zap.String("booking_id", booking.ID.String()),
				zap.String("room_id", booking.RoomID.String()))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return expired, nil
}
