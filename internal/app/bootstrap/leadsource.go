package bootstrap

import (
	"context"
	"time"

	campaignentities "prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	campaignports "prospector/contexts/sales-acquisition/campaign-service/ports"
	leadports "prospector/contexts/sales-acquisition/lead-service/ports"
)

// leadSource bridges the campaign sequencer to the lead store without the
// campaign context importing lead internals directly.
type leadSource struct {
	leads leadports.LeadRepository
}

func (s leadSource) ListAudience(ctx context.Context, accountID string, filter campaignentities.AudienceFilter) ([]campaignports.Recipient, error) {
	query := leadports.AudienceQuery{
		Statuses:   filter.Statuses,
		Industries: filter.Industries,
		Roles:      filter.Roles,
		Locations:  filter.Locations,
		FreeText:   filter.FreeText,
	}
	leads, err := s.leads.ListLeadsByAudience(ctx, accountID, query)
	if err != nil {
		return nil, err
	}

	recipients := make([]campaignports.Recipient, 0, len(leads))
	for _, lead := range leads {
		recipients = append(recipients, campaignports.Recipient{
			LeadID:       lead.LeadID,
			Email:        lead.Email,
			FirstName:    lead.FirstName,
			LastName:     lead.LastName,
			Company:      lead.Company,
			DoNotContact: lead.DoNotContact,
			Locked:       lead.Locked,
		})
	}
	return recipients, nil
}

func (s leadSource) MarkContacted(ctx context.Context, accountID, leadID string, at time.Time) error {
	lead, err := s.leads.GetLead(ctx, accountID, leadID)
	if err != nil {
		return err
	}
	stamp := at.UTC()
	lead.LastContactedAt = &stamp
	lead.UpdatedAt = stamp
	return s.leads.UpdateLead(ctx, lead)
}
