package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "prospector/contexts/sales-acquisition/campaign-service/application"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

const (
	defaultSubject = "Quick question for {{company}}"
	defaultBody    = "Hi {{first_name}},\n\nWe are reaching out as part of {{campaign}}. " +
		"Would love to hear how {{company}} is handling this today.\n"
)

type RunCampaignCommand struct {
	AccountID  string
	CampaignID string
}

type RunCampaignResult struct {
	Audience   int
	Queued     int
	Activities int
	Skipped    int
}

type RunCampaignUseCase struct {
	Campaigns  ports.CampaignRepository
	Messages   ports.MessageRepository
	Activities ports.ActivityRepository
	Leads      ports.LeadSource
	Selector   VariantSelector
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute schedules every touchpoint of the campaign sequence for the
// resolved audience. Re-running is safe: a step that already produced a
// message or activity for a lead is skipped.
func (uc RunCampaignUseCase) Execute(ctx context.Context, cmd RunCampaignCommand) (RunCampaignResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return RunCampaignResult{}, domainerrors.ErrAccountRequired
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, accountID, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return RunCampaignResult{}, err
	}
	if !campaign.Runnable() {
		return RunCampaignResult{}, domainerrors.ErrCampaignNotRunnable
	}

	runStart := uc.Clock.Now().UTC()
	audience, err := uc.Leads.ListAudience(ctx, accountID, campaign.Audience)
	if err != nil {
		return RunCampaignResult{}, err
	}

	result := RunCampaignResult{Audience: len(audience)}
	for index, step := range campaign.Sequence {
		scheduledAt := runStart.Add(time.Duration(step.DelayMinutes) * time.Minute)
		for _, recipient := range audience {
			created, err := uc.scheduleTouchpoint(ctx, &campaign, recipient, step, index, scheduledAt, runStart)
			if err != nil {
				return RunCampaignResult{}, err
			}
			switch created {
			case touchpointMessage:
				result.Queued++
			case touchpointActivity:
				result.Activities++
			default:
				result.Skipped++
			}
		}
	}

	if campaign.Status == entities.CampaignStatusScheduled {
		campaign.Status = entities.CampaignStatusRunning
		campaign.StartedAt = &runStart
	}
	campaign.UpdatedAt = runStart
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return RunCampaignResult{}, err
	}

	logger.Info("campaign run completed",
		"event", "campaign_run_completed",
		"module", "sales-acquisition/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"audience", result.Audience,
		"queued", result.Queued,
		"activities", result.Activities,
		"skipped", result.Skipped,
	)
	return result, nil
}

type touchpointKind int

const (
	touchpointNone touchpointKind = iota
	touchpointMessage
	touchpointActivity
)

func (uc RunCampaignUseCase) scheduleTouchpoint(
	ctx context.Context,
	campaign *entities.Campaign,
	recipient ports.Recipient,
	step entities.Step,
	stepIndex int,
	scheduledAt time.Time,
	now time.Time,
) (touchpointKind, error) {
	if recipient.DoNotContact {
		return touchpointNone, nil
	}

	if step.Channel == entities.ChannelEmail {
		if recipient.Email == "" || recipient.Locked {
			return touchpointNone, nil
		}
		_, err := uc.Messages.FindStepMessage(ctx, campaign.AccountID, campaign.CampaignID, recipient.LeadID, stepIndex)
		if err == nil {
			return touchpointNone, nil
		}
		if !errors.Is(err, domainerrors.ErrMessageNotFound) {
			return touchpointNone, err
		}
		if err := uc.queueEmail(ctx, campaign, recipient, step, stepIndex, scheduledAt, now); err != nil {
			return touchpointNone, err
		}
		return touchpointMessage, nil
	}

	_, exists, err := uc.Activities.FindStepActivity(ctx, campaign.AccountID, campaign.CampaignID, recipient.LeadID, stepIndex)
	if err != nil {
		return touchpointNone, err
	}
	if exists {
		return touchpointNone, nil
	}
	if err := uc.recordPlaceholder(ctx, campaign, recipient, step, stepIndex, scheduledAt, now); err != nil {
		return touchpointNone, err
	}
	return touchpointActivity, nil
}

func (uc RunCampaignUseCase) queueEmail(
	ctx context.Context,
	campaign *entities.Campaign,
	recipient ports.Recipient,
	step entities.Step,
	stepIndex int,
	scheduledAt time.Time,
	now time.Time,
) error {
	subject := defaultSubject
	body := defaultBody
	variantName := ""
	if variant, ok := uc.Selector.Pick(step.Variants); ok {
		variantName = variant.Name
		if strings.TrimSpace(variant.Subject) != "" {
			subject = variant.Subject
		}
		if strings.TrimSpace(variant.Body) != "" {
			body = variant.Body
		}
	}

	messageID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	message := entities.OutboundMessage{
		MessageID:   messageID,
		AccountID:   campaign.AccountID,
		CampaignID:  campaign.CampaignID,
		LeadID:      recipient.LeadID,
		Direction:   entities.MessageDirectionOutbound,
		Status:      entities.MessageStatusQueued,
		Subject:     renderTemplate(subject, recipient, campaign.Name),
		BodyText:    renderTemplate(body, recipient, campaign.Name),
		ScheduledAt: scheduledAt,
		Metadata:    entities.MessageMetadata{StepIndex: stepIndex, Variant: variantName},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Messages.CreateMessage(ctx, message); err != nil {
		return err
	}
	campaign.Metrics.Queued++
	return nil
}

func (uc RunCampaignUseCase) recordPlaceholder(
	ctx context.Context,
	campaign *entities.Campaign,
	recipient ports.Recipient,
	step entities.Step,
	stepIndex int,
	scheduledAt time.Time,
	now time.Time,
) error {
	activityID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Activities.CreateActivity(ctx, entities.Activity{
		ActivityID: activityID,
		AccountID:  campaign.AccountID,
		LeadID:     recipient.LeadID,
		CampaignID: campaign.CampaignID,
		Kind:       "outreach_touchpoint",
		Content:    string(step.Channel) + " touchpoint for " + campaign.Name,
		HappenedAt: now,
		Metadata: entities.ActivityMetadata{
			Channel:     step.Channel,
			ScheduledAt: scheduledAt,
			StepIndex:   stepIndex,
		},
		CreatedAt: now,
	})
}

func renderTemplate(template string, recipient ports.Recipient, campaignName string) string {
	replacer := strings.NewReplacer(
		"{{first_name}}", recipient.FirstName,
		"{{last_name}}", recipient.LastName,
		"{{company}}", recipient.Company,
		"{{campaign}}", campaignName,
	)
	return replacer.Replace(template)
}
