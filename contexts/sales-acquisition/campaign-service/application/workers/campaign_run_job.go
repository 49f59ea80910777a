package workers

import (
	"context"
	"errors"
	"log/slog"

	application "prospector/contexts/sales-acquisition/campaign-service/application"
	"prospector/contexts/sales-acquisition/campaign-service/application/commands"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
)

const TaskRunCampaign = "campaign.run"

// CampaignRunJob is the task body for one campaign sequencer pass. Args:
// {account_id, campaign_id}.
type CampaignRunJob struct {
	Run    commands.RunCampaignUseCase
	Logger *slog.Logger
}

func (j CampaignRunJob) Handle(ctx context.Context, args map[string]any) error {
	logger := application.ResolveLogger(j.Logger)

	cmd := commands.RunCampaignCommand{
		AccountID:  argString(args, "account_id"),
		CampaignID: argString(args, "campaign_id"),
	}
	result, err := j.Run.Execute(ctx, cmd)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCampaignNotRunnable) {
			logger.Info("campaign run skipped",
				"event", "campaign_run_skipped",
				"module", "sales-acquisition/campaign-service",
				"layer", "worker",
				"campaign_id", cmd.CampaignID,
			)
			return nil
		}
		logger.Error("campaign run job failed",
			"event", "campaign_run_job_failed",
			"module", "sales-acquisition/campaign-service",
			"layer", "worker",
			"campaign_id", cmd.CampaignID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("campaign run job finished",
		"event", "campaign_run_job_finished",
		"module", "sales-acquisition/campaign-service",
		"layer", "worker",
		"campaign_id", cmd.CampaignID,
		"audience", result.Audience,
		"queued", result.Queued,
		"activities", result.Activities,
		"skipped", result.Skipped,
	)
	return nil
}

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}
