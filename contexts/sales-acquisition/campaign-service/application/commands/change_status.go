package commands

import (
	"context"
	"log/slog"
	"strings"

	application "prospector/contexts/sales-acquisition/campaign-service/application"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

type ChangeStatusAction string

const (
	StatusActionSchedule ChangeStatusAction = "schedule"
	StatusActionPause    ChangeStatusAction = "pause"
	StatusActionResume   ChangeStatusAction = "resume"
	StatusActionComplete ChangeStatusAction = "complete"
	StatusActionArchive  ChangeStatusAction = "archive"
)

type ChangeStatusCommand struct {
	AccountID  string
	CampaignID string
	Action     ChangeStatusAction
}

type ChangeStatusUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.AccountID), strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	from := campaign.Status
	to := from
	switch cmd.Action {
	case StatusActionSchedule:
		if campaign.Status != entities.CampaignStatusDraft {
			return domainerrors.ErrInvalidStateTransition
		}
		to = entities.CampaignStatusScheduled
	case StatusActionPause:
		if campaign.Status != entities.CampaignStatusRunning {
			return domainerrors.ErrInvalidStateTransition
		}
		to = entities.CampaignStatusPaused
	case StatusActionResume:
		if campaign.Status != entities.CampaignStatusPaused {
			return domainerrors.ErrInvalidStateTransition
		}
		to = entities.CampaignStatusRunning
	case StatusActionComplete:
		if campaign.Status != entities.CampaignStatusRunning && campaign.Status != entities.CampaignStatusPaused {
			return domainerrors.ErrInvalidStateTransition
		}
		to = entities.CampaignStatusCompleted
		campaign.EndedAt = &now
	case StatusActionArchive:
		if campaign.Status == entities.CampaignStatusRunning {
			return domainerrors.ErrInvalidStateTransition
		}
		to = entities.CampaignStatusArchived
		if campaign.EndedAt == nil {
			campaign.EndedAt = &now
		}
	default:
		return domainerrors.ErrInvalidStateTransition
	}

	campaign.Status = to
	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return err
	}

	logger.Info("campaign state changed",
		"event", "campaign_state_changed",
		"module", "sales-acquisition/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"from_status", string(from),
		"to_status", string(to),
	)
	return nil
}
