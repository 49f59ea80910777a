package queries

import (
	"context"
	"log/slog"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type SearchLeadsUseCase struct {
	Leads  ports.LeadRepository
	Logger *slog.Logger
}

func (uc SearchLeadsUseCase) Execute(ctx context.Context, accountID string, filters ports.SearchFilters) ([]entities.Lead, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, domainerrors.ErrAccountRequired
	}
	return uc.Leads.SearchLeads(ctx, strings.TrimSpace(accountID), filters)
}
