package rates

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = time.Hour

// Scheduler periodically attempts a quota-gated refresh while the
// process serves HTTP. Most runs end in quota_exceeded once the daily
// budget is spent; that is logged, not treated as failure.
type Scheduler struct {
	service  *Service
	interval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(service *Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Scheduler{service: service, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		res := s.service.Refresh(jobCtx, Today())
		switch res.Status {
		case StatusRefreshed:
			logrus.Infof("Refreshed %d rates, %d fetches left today; execID: %s", res.Updated, res.Remaining, execID)
		case StatusQuotaExceeded:
			logrus.Infof("Daily fetch quota spent, skipping refresh; execID: %s", execID)
		case StatusFailed:
			logrus.Errorf("Scheduled refresh %s failed: %v", execID, res.Err)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
