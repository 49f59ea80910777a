package commands

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"prospector/contexts/sales-acquisition/campaign-service/adapters/memory"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

type stubLeadSource struct {
	recipients []ports.Recipient
	contacted  []string
}

func (s *stubLeadSource) ListAudience(_ context.Context, _ string, _ entities.AudienceFilter) ([]ports.Recipient, error) {
	return s.recipients, nil
}

func (s *stubLeadSource) MarkContacted(_ context.Context, _, leadID string, _ time.Time) error {
	s.contacted = append(s.contacted, leadID)
	return nil
}

func seedCampaign(sequence []entities.Step) entities.Campaign {
	return entities.Campaign{
		CampaignID: "camp-1",
		AccountID:  "acct-1",
		Name:       "Spring Outreach",
		Status:     entities.CampaignStatusScheduled,
		Sequence:   sequence,
	}
}

func newRunUseCase(store *memory.Store, leads ports.LeadSource) RunCampaignUseCase {
	return RunCampaignUseCase{
		Campaigns:  store,
		Messages:   store,
		Activities: store,
		Leads:      leads,
		Selector:   VariantSelector{Rand: rand.New(rand.NewSource(1))},
		Clock:      store,
		IDGen:      store,
	}
}

func TestRunCampaignQueuesEmailsAndSkipsIneligible(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelEmail, DelayMinutes: 0},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-ok", Email: "ada@northwind.example", FirstName: "Ada", Company: "Northwind"},
		{LeadID: "lead-no-email"},
		{LeadID: "lead-dnc", Email: "omar@cloudline.example", DoNotContact: true},
		{LeadID: "lead-locked", Email: "email_not_unlocked@domain.com", Locked: true},
	}}

	run := newRunUseCase(store, leads)
	result, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Queued != 1 || result.Skipped != 3 {
		t.Fatalf("expected 1 queued and 3 skipped, got %+v", result)
	}

	messages := store.Messages()
	if len(messages) != 1 || messages[0].LeadID != "lead-ok" {
		t.Fatalf("expected a single message for the eligible lead, got %+v", messages)
	}
	if messages[0].Status != entities.MessageStatusQueued {
		t.Fatalf("expected queued status, got %q", messages[0].Status)
	}
}

func TestRunCampaignSchedulesStepsByDelay(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelEmail, DelayMinutes: 0},
		{Channel: entities.ChannelEmail, DelayMinutes: 60},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-1", Email: "ada@northwind.example"},
	}}

	run := newRunUseCase(store, leads)
	if _, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected one message per step, got %d", len(messages))
	}
	gap := messages[1].ScheduledAt.Sub(messages[0].ScheduledAt)
	if gap != 60*time.Minute {
		t.Fatalf("expected 60m between steps, got %s", gap)
	}
}

func TestRunCampaignRecordsPlaceholderForNonEmailChannels(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelLinkedin, DelayMinutes: 30},
		{Channel: entities.ChannelSMS, DelayMinutes: 90},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-1", Email: "ada@northwind.example"},
	}}

	run := newRunUseCase(store, leads)
	result, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Queued != 0 || result.Activities != 2 {
		t.Fatalf("expected 2 placeholder activities, got %+v", result)
	}

	activities := store.Activities()
	if activities[0].Metadata.Channel != entities.ChannelLinkedin {
		t.Fatalf("expected linkedin channel metadata, got %q", activities[0].Metadata.Channel)
	}
	if activities[1].Metadata.StepIndex != 1 {
		t.Fatalf("expected step index recorded, got %d", activities[1].Metadata.StepIndex)
	}
}

func TestRunCampaignTransitionsScheduledToRunning(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign(nil)})
	run := newRunUseCase(store, &stubLeadSource{})

	if _, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	campaign, err := store.GetCampaign(context.Background(), "acct-1", "camp-1")
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if campaign.Status != entities.CampaignStatusRunning {
		t.Fatalf("expected running status after first run, got %q", campaign.Status)
	}
	if campaign.StartedAt == nil {
		t.Fatalf("expected started timestamp stamped")
	}
}

func TestRunCampaignReRunIsIdempotentPerStep(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelEmail, DelayMinutes: 0},
		{Channel: entities.ChannelLinkedin, DelayMinutes: 15},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-1", Email: "ada@northwind.example"},
	}}

	run := newRunUseCase(store, leads)
	ctx := context.Background()
	if _, err := run.Execute(ctx, RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := run.Execute(ctx, RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Queued != 0 || second.Activities != 0 {
		t.Fatalf("expected re-run to create nothing new, got %+v", second)
	}
	if len(store.Messages()) != 1 || len(store.Activities()) != 1 {
		t.Fatalf("expected one touchpoint per step after re-run")
	}
}

func TestRunCampaignRejectsNonRunnableStatus(t *testing.T) {
	campaign := seedCampaign(nil)
	campaign.Status = entities.CampaignStatusDraft
	store := memory.NewStore([]entities.Campaign{campaign})

	run := newRunUseCase(store, &stubLeadSource{})
	if _, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err == nil {
		t.Fatalf("expected draft campaign run to be rejected")
	}
}

func TestRunCampaignRendersVariantTemplates(t *testing.T) {
	store := memory.NewStore([]entities.Campaign{seedCampaign([]entities.Step{
		{Channel: entities.ChannelEmail, DelayMinutes: 0, Variants: []entities.Variant{
			{Name: "a", Weight: 1, Subject: "Hello {{first_name}}", Body: "Greetings from {{campaign}} to {{company}}"},
		}},
	})})
	leads := &stubLeadSource{recipients: []ports.Recipient{
		{LeadID: "lead-1", Email: "ada@northwind.example", FirstName: "Ada", Company: "Northwind"},
	}}

	run := newRunUseCase(store, leads)
	if _, err := run.Execute(context.Background(), RunCampaignCommand{AccountID: "acct-1", CampaignID: "camp-1"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	messages := store.Messages()
	if messages[0].Subject != "Hello Ada" {
		t.Fatalf("unexpected subject %q", messages[0].Subject)
	}
	if messages[0].BodyText != "Greetings from Spring Outreach to Northwind" {
		t.Fatalf("unexpected body %q", messages[0].BodyText)
	}
	if messages[0].Metadata.Variant != "a" {
		t.Fatalf("expected variant recorded in metadata, got %q", messages[0].Metadata.Variant)
	}
}
