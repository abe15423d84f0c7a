package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PruneSpec runs the download cleanup at the top of every hour
const PruneSpec = "0 * * * *"

// Pruner removes expired downloads
type Pruner interface {
	PruneDownloads(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron   *cron.Cron
	pruner Pruner
	logger *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(pruner Pruner, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		pruner: pruner,
		logger: logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if _, err := s.cron.AddFunc(PruneSpec, s.runPrune); err != nil {
		return fmt.Errorf("failed to add prune job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("Scheduler started")

	// Catch up on anything left from a previous run
	go s.runPrune()

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// runPrune executes the download cleanup job
func (s *Scheduler) runPrune() {
	s.logger.Debug("Running scheduled download cleanup")

	pruned, err := s.pruner.PruneDownloads(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("Download cleanup job failed")
		return
	}
	s.logger.WithField("pruned", pruned).Debug("Download cleanup job completed")
}
