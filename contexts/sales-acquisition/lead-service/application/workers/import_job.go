package workers

import (
	"context"
	"log/slog"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/application/commands"
)

// ImportJob is the task body for a CSV lead import. Args:
// {account_id, csv}.
type ImportJob struct {
	Import commands.ImportLeadsUseCase
	Logger *slog.Logger
}

func (j ImportJob) Handle(ctx context.Context, args map[string]any) error {
	logger := application.ResolveLogger(j.Logger)

	cmd := commands.ImportCommand{
		AccountID: argString(args, "account_id"),
		CSV:       argString(args, "csv"),
	}
	result, err := j.Import.Execute(ctx, cmd)
	if err != nil {
		logger.Error("import job failed",
			"event", "lead_import_job_failed",
			"module", "sales-acquisition/lead-service",
			"layer", "worker",
			"account_id", cmd.AccountID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("import job finished",
		"event", "lead_import_job_finished",
		"module", "sales-acquisition/lead-service",
		"layer", "worker",
		"account_id", cmd.AccountID,
		"rows", result.Rows,
		"created", result.Merge.Created,
		"updated", result.Merge.Updated,
	)
	return nil
}
