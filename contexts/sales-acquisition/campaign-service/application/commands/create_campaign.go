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

type CreateCampaignCommand struct {
	AccountID string
	Name      string
	Audience  entities.AudienceFilter
	Sequence  []entities.Step
}

type CreateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return entities.Campaign{}, domainerrors.ErrAccountRequired
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	campaign := entities.Campaign{
		CampaignID: campaignID,
		AccountID:  accountID,
		Name:       strings.TrimSpace(cmd.Name),
		Status:     entities.CampaignStatusDraft,
		Audience:   cmd.Audience,
		Sequence:   cmd.Sequence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "sales-acquisition/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"steps", len(campaign.Sequence),
	)
	return campaign, nil
}
