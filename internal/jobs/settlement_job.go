// Package jobs contains the scheduled background work of the application.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/settlement"

	"github.com/robfig/cron/v3"
)

// SettlementJob generates rider settlements for the last calendar week.
// Runs every Monday at midnight in the configured business timezone, so the
// window it settles is always the week that just ended.
type SettlementJob struct {
	handler  commands.GenerateSettlementsCommandHandler
	cron     *cron.Cron
	location *time.Location
	logger   *slog.Logger
}

// NewSettlementJob creates the weekly settlement job. The location decides
// both when the job fires and which days belong to the settled week.
func NewSettlementJob(
	handler commands.GenerateSettlementsCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *SettlementJob {
	return &SettlementJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		location: location,
		logger:   logger.With("component", "settlement_job"),
	}
}

// Start schedules the job for every Monday at midnight.
func (j *SettlementJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * MON", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Settlement job started (running every Monday at midnight)",
		"timezone", j.location.String())
	return nil
}

// Stop stops the settlement job.
func (j *SettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement job stopped")
}

func (j *SettlementJob) run() {
	ctx := context.Background()
	window := settlement.LastCalendarWeek(time.Now().In(j.location))

	cmd, err := commands.NewGenerateSettlementsCommand(window)
	if err != nil {
		j.logger.ErrorContext(ctx, "Settlement job could not build command", "error", err)
		return
	}

	settlements, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// A paid window means a manual run already settled and closed this
		// week; that is not a failure of the job.
		if errors.Is(err, commands.ErrSettlementWindowLocked) {
			j.logger.InfoContext(ctx, "Settlement window already paid, skipping",
				"window", window.String())
			return
		}
		j.logger.ErrorContext(ctx, "Settlement job failed",
			"window", window.String(), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Settlements generated",
		"window", window.String(), "count", len(settlements))
}
