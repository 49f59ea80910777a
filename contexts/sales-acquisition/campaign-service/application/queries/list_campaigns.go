package queries

import (
	"context"
	"log/slog"
	"strings"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, accountID string) ([]entities.Campaign, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, domainerrors.ErrAccountRequired
	}
	return uc.Campaigns.ListCampaigns(ctx, strings.TrimSpace(accountID))
}
