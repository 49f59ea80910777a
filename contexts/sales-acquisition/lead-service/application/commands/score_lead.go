package commands

import (
	"context"
	"log/slog"
	"strings"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/domain/score"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type ScoreLeadCommand struct {
	AccountID string
	LeadID    string
}

// ScoreLeadUseCase recomputes and persists one lead's quality score from
// its current state and related engagement counts.
type ScoreLeadUseCase struct {
	Leads      ports.LeadRepository
	Engagement ports.EngagementSource
	Clock      ports.Clock
	Weights    score.Weights
	Logger     *slog.Logger
}

func (uc ScoreLeadUseCase) Execute(ctx context.Context, cmd ScoreLeadCommand) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return 0, domainerrors.ErrAccountRequired
	}

	lead, err := uc.Leads.GetLead(ctx, accountID, strings.TrimSpace(cmd.LeadID))
	if err != nil {
		return 0, err
	}

	signals, err := uc.collectSignals(ctx, accountID, lead.LeadID)
	if err != nil {
		return 0, err
	}

	now := uc.Clock.Now().UTC()
	value := score.Compute(lead, signals, now, uc.weights())
	if value != lead.Score {
		lead.Score = value
		lead.UpdatedAt = now
		if err := uc.Leads.UpdateLead(ctx, lead); err != nil {
			return 0, err
		}
	}

	logger.Debug("lead scored",
		"event", "lead_scored",
		"module", "sales-acquisition/lead-service",
		"layer", "application",
		"lead_id", lead.LeadID,
		"score", value,
	)
	return value, nil
}

func (uc ScoreLeadUseCase) collectSignals(ctx context.Context, accountID, leadID string) (score.Signals, error) {
	if uc.Engagement == nil {
		return score.Signals{}, nil
	}
	byStatus, err := uc.Engagement.CountMessagesByStatus(ctx, accountID, leadID)
	if err != nil {
		return score.Signals{}, err
	}
	activities, err := uc.Engagement.CountActivities(ctx, accountID, leadID)
	if err != nil {
		return score.Signals{}, err
	}
	return score.Signals{
		Opened:     byStatus["opened"],
		Replied:    byStatus["replied"],
		Activities: activities,
	}, nil
}

func (uc ScoreLeadUseCase) weights() score.Weights {
	if uc.Weights.Ceiling == 0 && uc.Weights.Status == nil {
		return score.DefaultWeights()
	}
	return uc.Weights
}
