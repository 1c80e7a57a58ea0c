package jobs

import (
	"context"

	"carhive-backend/internal/config"
	"carhive-backend/internal/logger"
	"carhive-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	svc    service.MarketplaceService
	config *config.Config
}

func NewJobRunner(svc service.MarketplaceService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		svc:    svc,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps a job so a panic inside it is logged instead of
// taking the scheduler down.
func (jr *JobRunner) runWithRecovery(name string, job func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", name, "panic", r)
		}
	}()
	logger.Debug("Job starting", "job", name)
	job()
	logger.Debug("Job finished", "job", name)
}

// ExpireOverdueRentals sweeps active rentals whose expiry has passed and
// forfeits their deposits.
func (jr *JobRunner) ExpireOverdueRentals() {
	jr.runWithRecovery("ExpireOverdueRentals", func() {
		ctx := context.Background()

		expired, err := jr.svc.ExpireOverdue(ctx)
		if err != nil {
			logger.Error("Failed to expire overdue rentals", "error", err)
			return
		}
		if expired > 0 {
			logger.Info("Expired overdue rentals", "count", expired)
		}
	})
}
