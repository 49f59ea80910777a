package memory

import (
	"context"
	"testing"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

func audienceSeed() []entities.Lead {
	return []entities.Lead{
		{
			LeadID:     "lead-1",
			AccountID:  "acct-1",
			Email:      "ada@northwind.example",
			Company:    "Northwind",
			JobTitle:   "CTO",
			Location:   "Berlin, Germany",
			Status:     entities.LeadStatusEnriched,
			Enrichment: map[string]string{"industry": "software"},
		},
		{
			LeadID:    "lead-2",
			AccountID: "acct-1",
			Email:     "omar@cloudline.example",
			Company:   "Cloudline",
			JobTitle:  "Account Manager",
			Location:  "Austin, US",
			Status:    entities.LeadStatusNew,
		},
		{
			LeadID:    "lead-3",
			AccountID: "acct-2",
			Email:     "other@tenant.example",
			Status:    entities.LeadStatusEnriched,
		},
	}
}

func TestListLeadsByAudienceFiltersAreANDed(t *testing.T) {
	store := NewStore(audienceSeed())
	ctx := context.Background()

	leads, err := store.ListLeadsByAudience(ctx, "acct-1", ports.AudienceQuery{
		Statuses: []string{string(entities.LeadStatusEnriched)},
		Roles:    []string{"cto"},
	})
	if err != nil {
		t.Fatalf("audience query failed: %v", err)
	}
	if len(leads) != 1 || leads[0].LeadID != "lead-1" {
		t.Fatalf("expected only the enriched CTO, got %+v", leads)
	}

	leads, err = store.ListLeadsByAudience(ctx, "acct-1", ports.AudienceQuery{
		Statuses: []string{string(entities.LeadStatusEnriched)},
		Roles:    []string{"account manager"},
	})
	if err != nil {
		t.Fatalf("audience query failed: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("expected ANDed criteria to exclude everyone, got %+v", leads)
	}
}

func TestListLeadsByAudienceScopesToAccount(t *testing.T) {
	store := NewStore(audienceSeed())
	leads, err := store.ListLeadsByAudience(context.Background(), "acct-1", ports.AudienceQuery{
		Statuses: []string{string(entities.LeadStatusEnriched), string(entities.LeadStatusNew)},
	})
	if err != nil {
		t.Fatalf("audience query failed: %v", err)
	}
	for _, lead := range leads {
		if lead.AccountID != "acct-1" {
			t.Fatalf("expected account scoping, got lead %s of %s", lead.LeadID, lead.AccountID)
		}
	}
	if len(leads) != 2 {
		t.Fatalf("expected two account leads, got %d", len(leads))
	}
}

func TestCreateLeadRejectsDuplicateIdentity(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	first := entities.Lead{LeadID: "lead-1", AccountID: "acct-1", Email: "ada@northwind.example"}
	if err := store.CreateLead(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	dup := entities.Lead{LeadID: "lead-2", AccountID: "acct-1", Email: "ADA@northwind.example"}
	if err := store.CreateLead(ctx, dup); err == nil {
		t.Fatalf("expected duplicate email rejection")
	}
}
