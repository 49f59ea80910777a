package queries

import (
	"context"
	"log/slog"
	"strings"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc GetCampaignUseCase) Execute(ctx context.Context, accountID, campaignID string) (entities.Campaign, error) {
	if strings.TrimSpace(accountID) == "" {
		return entities.Campaign{}, domainerrors.ErrAccountRequired
	}
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(accountID), strings.TrimSpace(campaignID))
}
