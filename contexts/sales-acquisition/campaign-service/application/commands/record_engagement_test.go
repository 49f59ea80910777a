package commands

import (
	"context"
	"errors"
	"testing"

	"prospector/contexts/sales-acquisition/campaign-service/adapters/memory"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

func engagementFixture(t *testing.T) (*memory.Store, *stubLeadSource, RecordEngagementUseCase) {
	t.Helper()
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelEmail, DelayMinutes: 0, Variants: []entities.Variant{
			{Name: "a", Weight: 1, Subject: "s", Body: "b"},
		}},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-1", Email: "ada@northwind.example"},
	}}

	run := newRunUseCase(store, leads)
	if _, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err != nil {
		t.Fatalf("seeding run failed: %v", err)
	}

	return store, leads, RecordEngagementUseCase{
		Campaigns: store,
		Messages:  store,
		Leads:     leads,
		Tasks:     store,
		Clock:     store,
	}
}

func TestRecordEngagementSentStampsAndCounts(t *testing.T) {
	store, leads, record := engagementFixture(t)
	message := store.Messages()[0]

	err := record.Execute(context.Background(), RecordEngagementCommand{
		AccountID: "acct-1",
		MessageID: message.MessageID,
		Status:    entities.MessageStatusSent,
	})
	if err != nil {
		t.Fatalf("record sent failed: %v", err)
	}

	updated, err := store.GetMessage(context.Background(), "acct-1", message.MessageID)
	if err != nil {
		t.Fatalf("get message failed: %v", err)
	}
	if updated.Status != entities.MessageStatusSent || updated.SentAt == nil {
		t.Fatalf("expected sent status with timestamp, got %+v", updated)
	}

	campaign, _ := store.GetCampaign(context.Background(), "acct-1", "camp-1")
	if campaign.Metrics.Sent != 1 {
		t.Fatalf("expected sent counter bumped, got %+v", campaign.Metrics)
	}
	if campaign.Metrics.ByVariant["a"].Sent != 1 {
		t.Fatalf("expected per-variant sent counter, got %+v", campaign.Metrics.ByVariant)
	}
	if len(leads.contacted) != 1 || leads.contacted[0] != "lead-1" {
		t.Fatalf("expected lead contact stamp, got %v", leads.contacted)
	}

	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Name != TaskScoreLead {
		t.Fatalf("expected a rescore task, got %v", tasks)
	}
}

func TestRecordEngagementReplyBumpsVariantCounters(t *testing.T) {
	store, _, record := engagementFixture(t)
	message := store.Messages()[0]
	ctx := context.Background()

	for _, status := range []entities.MessageStatus{entities.MessageStatusSent, entities.MessageStatusOpened, entities.MessageStatusReplied} {
		if err := record.Execute(ctx, RecordEngagementCommand{
			AccountID: "acct-1",
			MessageID: message.MessageID,
			Status:    status,
		}); err != nil {
			t.Fatalf("record %s failed: %v", status, err)
		}
	}

	campaign, _ := store.GetCampaign(ctx, "acct-1", "camp-1")
	if campaign.Metrics.Opened != 1 || campaign.Metrics.Replied != 1 {
		t.Fatalf("unexpected totals %+v", campaign.Metrics)
	}
	variant := campaign.Metrics.ByVariant["a"]
	if variant.Opened != 1 || variant.Replied != 1 {
		t.Fatalf("unexpected variant counters %+v", variant)
	}
}

func TestRecordEngagementRejectsUnknownStatus(t *testing.T) {
	_, _, record := engagementFixture(t)
	err := record.Execute(context.Background(), RecordEngagementCommand{
		AccountID: "acct-1",
		MessageID: "whatever",
		Status:    entities.MessageStatus("teleported"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidMessageStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}
