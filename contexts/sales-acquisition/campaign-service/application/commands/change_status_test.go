package commands

import (
	"context"
	"errors"
	"testing"

	"prospector/contexts/sales-acquisition/campaign-service/adapters/memory"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
)

func statusFixture(status entities.CampaignStatus) (*memory.Store, ChangeStatusUseCase) {
	campaign := seedCampaign(nil)
	campaign.Status = status
	store := memory.NewStore([]entities.Campaign{campaign})
	return store, ChangeStatusUseCase{Campaigns: store, Clock: store}
}

func TestChangeStatusLifecycle(t *testing.T) {
	cases := []struct {
		from   entities.CampaignStatus
		action ChangeStatusAction
		to     entities.CampaignStatus
	}{
		{entities.CampaignStatusDraft, StatusActionSchedule, entities.CampaignStatusScheduled},
		{entities.CampaignStatusRunning, StatusActionPause, entities.CampaignStatusPaused},
		{entities.CampaignStatusPaused, StatusActionResume, entities.CampaignStatusRunning},
		{entities.CampaignStatusRunning, StatusActionComplete, entities.CampaignStatusCompleted},
		{entities.CampaignStatusPaused, StatusActionComplete, entities.CampaignStatusCompleted},
		{entities.CampaignStatusCompleted, StatusActionArchive, entities.CampaignStatusArchived},
	}

	for _, tc := range cases {
		store, change := statusFixture(tc.from)
		err := change.Execute(context.Background(), ChangeStatusCommand{
			AccountID:  "acct-1",
			CampaignID: "camp-1",
			Action:     tc.action,
		})
		if err != nil {
			t.Fatalf("%s from %s failed: %v", tc.action, tc.from, err)
		}
		campaign, _ := store.GetCampaign(context.Background(), "acct-1", "camp-1")
		if campaign.Status != tc.to {
			t.Fatalf("expected %s after %s, got %s", tc.to, tc.action, campaign.Status)
		}
	}
}

func TestChangeStatusRejectsInvalidTransitions(t *testing.T) {
	cases := []struct {
		from   entities.CampaignStatus
		action ChangeStatusAction
	}{
		{entities.CampaignStatusRunning, StatusActionSchedule},
		{entities.CampaignStatusDraft, StatusActionPause},
		{entities.CampaignStatusRunning, StatusActionResume},
		{entities.CampaignStatusDraft, StatusActionComplete},
		{entities.CampaignStatusRunning, StatusActionArchive},
	}

	for _, tc := range cases {
		_, change := statusFixture(tc.from)
		err := change.Execute(context.Background(), ChangeStatusCommand{
			AccountID:  "acct-1",
			CampaignID: "camp-1",
			Action:     tc.action,
		})
		if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
			t.Fatalf("expected invalid transition for %s from %s, got %v", tc.action, tc.from, err)
		}
	}
}
