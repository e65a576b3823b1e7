package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	settlementJob *SettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	generateSettlementsHandler commands.GenerateSettlementsCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		settlementJob: NewSettlementJob(generateSettlementsHandler, location, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.settlementJob.Stop()
}
