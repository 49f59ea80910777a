package workers

import (
	"context"
	"log/slog"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/application/commands"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

// Task names consumed by the worker process.
const (
	TaskDiscoverLeads = "lead.discover"
	TaskImportLeads   = "lead.import"
)

// DiscoveryJob is the task body for one lead discovery run. Args:
// {account_id, filters: {keywords, role, location, limit}}.
type DiscoveryJob struct {
	Discover commands.DiscoverLeadsUseCase
	Logger   *slog.Logger
}

func (j DiscoveryJob) Handle(ctx context.Context, args map[string]any) error {
	logger := application.ResolveLogger(j.Logger)

	filters := argMap(args, "filters")
	cmd := commands.DiscoverCommand{
		AccountID: argString(args, "account_id"),
		Filters: ports.SearchFilters{
			Keywords: argString(filters, "keywords"),
			Role:     argString(filters, "role"),
			Location: argString(filters, "location"),
			Limit:    argInt(filters, "limit"),
		},
	}

	result, err := j.Discover.Execute(ctx, cmd)
	if err != nil {
		logger.Error("discovery job failed",
			"event", "lead_discovery_job_failed",
			"module", "sales-acquisition/lead-service",
			"layer", "worker",
			"account_id", cmd.AccountID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("discovery job finished",
		"event", "lead_discovery_job_finished",
		"module", "sales-acquisition/lead-service",
		"layer", "worker",
		"account_id", cmd.AccountID,
		"created", result.Merge.Created,
		"updated", result.Merge.Updated,
		"skipped", result.Merge.Skipped,
	)
	return nil
}
