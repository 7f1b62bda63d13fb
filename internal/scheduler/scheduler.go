package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/service/portfolio"
)

const refreshTimeout = 2 * time.Minute

// Refresher reloads the portfolio snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (portfolio.RefreshResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that runs the snapshot refresh in the configured timezone.
func NewScheduler(cfg config.RefreshConfig, refresher Refresher, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		refresher: refresher,
		spec:      cfg.CronSchedule,
		logger:    logger,
	}, nil
}

// Start registers the refresh job and starts the scheduler. An empty schedule disables it.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("scheduled refresh disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.refresh); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Error("scheduled refresh failed", zap.Error(err))
	}
}
