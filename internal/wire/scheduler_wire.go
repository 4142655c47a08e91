package wire

import (
	"context"
	"time"

	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/scheduler"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupSchedule = "@every 1h"

func setupScheduler(service *usecase.Service, config *utils.Config, logger *zap.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger)

	if config.Sweeper.Enabled {
		err := s.Register(scheduler.Job{
			Name:     "booking-expiry",
			Schedule: config.Sweeper.Schedule,
			Timeout:  config.Sweeper.Timeout,
			Run:      service.Expiry.Run,
		})
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("Booking expiry sweeper disabled")
	}

	err := s.Register(scheduler.Job{
		Name:     "session-cleanup",
		Schedule: sessionCleanupSchedule,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			return service.Auth.CleanExpiredSessions(ctx)
		},
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}
