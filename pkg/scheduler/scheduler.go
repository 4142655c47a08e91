package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobFunc is one unit of background work. The context carries the job timeout
// and is cancelled when the scheduler stops.
type JobFunc func(ctx context.Context) error

type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      JobFunc
}

// Scheduler runs registered jobs on cron schedules. A job never overlaps with
// itself and a panicking job does not take the process down.
type Scheduler struct {
	cron   *cron.Cron
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(log *zap.Logger) *Scheduler {
	log = log.With(zap.String("component", "scheduler"))
	cronLog := &cronLogger{log: log}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Register(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %q has no run func", job.Name)
	}

	_, err := s.cron.AddFunc(job.Schedule, func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("schedule job %q (%s): %w", job.Name, job.Schedule, err)
	}

	s.log.Info("Job registered",
		zap.String("job", job.Name),
		zap.String("schedule", job.Schedule),
		zap.Duration("timeout", job.Timeout))
	return nil
}

func (s *Scheduler) runJob(job Job) {
	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("Job failed",
			zap.String("job", job.Name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	s.log.Debug("Job finished",
		zap.String("job", job.Name),
		zap.Duration("duration", time.Since(start)))
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))

	<-ctx.Done()

	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, zap.Any("details", keysAndValues))
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
