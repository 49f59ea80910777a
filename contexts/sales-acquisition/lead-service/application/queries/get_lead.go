package queries

import (
	"context"
	"log/slog"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type GetLeadUseCase struct {
	Leads  ports.LeadRepository
	Logger *slog.Logger
}

func (uc GetLeadUseCase) Execute(ctx context.Context, accountID, leadID string) (entities.Lead, error) {
	if strings.TrimSpace(accountID) == "" {
		return entities.Lead{}, domainerrors.ErrAccountRequired
	}
	return uc.Leads.GetLead(ctx, strings.TrimSpace(accountID), strings.TrimSpace(leadID))
}
