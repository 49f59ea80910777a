package workers

import (
	"context"
	"errors"
	"log/slog"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/application/commands"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
)

// ScoreJob is the task body for one lead scoring run. Args:
// {account_id, lead_id}. A lead deleted between enqueue and run is not an
// error.
type ScoreJob struct {
	Score  commands.ScoreLeadUseCase
	Logger *slog.Logger
}

func (j ScoreJob) Handle(ctx context.Context, args map[string]any) error {
	logger := application.ResolveLogger(j.Logger)

	cmd := commands.ScoreLeadCommand{
		AccountID: argString(args, "account_id"),
		LeadID:    argString(args, "lead_id"),
	}
	value, err := j.Score.Execute(ctx, cmd)
	if err != nil {
		if errors.Is(err, domainerrors.ErrLeadNotFound) {
			return nil
		}
		logger.Error("score job failed",
			"event", "lead_score_job_failed",
			"module", "sales-acquisition/lead-service",
			"layer", "worker",
			"lead_id", cmd.LeadID,
			"error", err.Error(),
		)
		return err
	}

	logger.Debug("score job finished",
		"event", "lead_score_job_finished",
		"module", "sales-acquisition/lead-service",
		"layer", "worker",
		"lead_id", cmd.LeadID,
		"score", value,
	)
	return nil
}
