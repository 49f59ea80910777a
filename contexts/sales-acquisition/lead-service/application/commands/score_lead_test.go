package commands

import (
	"context"
	"testing"

	"prospector/contexts/sales-acquisition/lead-service/adapters/memory"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
)

func TestScoreLeadPersistsEngagementDrivenScore(t *testing.T) {
	store := memory.NewStore([]entities.Lead{
		{
			LeadID:    "lead-1",
			AccountID: "acct-1",
			Email:     "ada@northwind.example",
			Company:   "Northwind",
			Status:    entities.LeadStatusOutreach,
		},
	})
	store.SetEngagement("lead-1", map[string]int{"opened": 2, "replied": 1}, 3)

	scoreLead := ScoreLeadUseCase{Leads: store, Engagement: store, Clock: store}
	value, err := scoreLead.Execute(context.Background(), ScoreLeadCommand{AccountID: "acct-1", LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if value <= 0 || value > 100 {
		t.Fatalf("expected score inside (0,100], got %d", value)
	}

	lead, err := store.GetLead(context.Background(), "acct-1", "lead-1")
	if err != nil {
		t.Fatalf("get lead failed: %v", err)
	}
	if lead.Score != value {
		t.Fatalf("expected persisted score %d, got %d", value, lead.Score)
	}
}

func TestScoreLeadUnknownLeadSurfacesNotFound(t *testing.T) {
	store := memory.NewStore(nil)
	scoreLead := ScoreLeadUseCase{Leads: store, Engagement: store, Clock: store}
	if _, err := scoreLead.Execute(context.Background(), ScoreLeadCommand{AccountID: "acct-1", LeadID: "ghost"}); err == nil {
		t.Fatalf("expected not-found error")
	}
}
