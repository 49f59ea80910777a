package commands

import (
	"context"
	"log/slog"
	"strings"

	application "prospector/contexts/sales-acquisition/campaign-service/application"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

const TaskScoreLead = "lead.score"

type RecordEngagementCommand struct {
	AccountID string
	MessageID string
	Status    entities.MessageStatus
}

type RecordEngagementUseCase struct {
	Campaigns ports.CampaignRepository
	Messages  ports.MessageRepository
	Leads     ports.LeadSource
	Tasks     ports.TaskQueue
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute moves an outbound message through its delivery lifecycle and keeps
// the owning campaign's engagement counters in step.
func (uc RecordEngagementUseCase) Execute(ctx context.Context, cmd RecordEngagementCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return domainerrors.ErrAccountRequired
	}
	if !entities.IsSupportedMessageStatus(cmd.Status) || cmd.Status == entities.MessageStatusQueued {
		return domainerrors.ErrInvalidMessageStatus
	}

	message, err := uc.Messages.GetMessage(ctx, accountID, strings.TrimSpace(cmd.MessageID))
	if err != nil {
		return err
	}

	now := uc.Clock.Now().UTC()
	from := message.Status
	message.Status = cmd.Status
	message.UpdatedAt = now
	if from == entities.MessageStatusQueued && message.SentAt == nil {
		message.SentAt = &now
	}
	if err := uc.Messages.UpdateMessage(ctx, message); err != nil {
		return err
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, accountID, message.CampaignID)
	if err != nil {
		return err
	}
	bumpMetrics(&campaign.Metrics, message.Metadata.Variant, cmd.Status)
	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return err
	}

	if cmd.Status == entities.MessageStatusSent {
		if err := uc.Leads.MarkContacted(ctx, accountID, message.LeadID, now); err != nil {
			logger.Warn("lead contact stamp failed",
				"event", "lead_contact_stamp_failed",
				"module", "sales-acquisition/campaign-service",
				"layer", "application",
				"lead_id", message.LeadID,
				"error", err.Error(),
			)
		}
	}

	if uc.Tasks != nil {
		args := map[string]any{"account_id": accountID, "lead_id": message.LeadID}
		if err := uc.Tasks.Enqueue(ctx, TaskScoreLead, args); err != nil {
			logger.Warn("score enqueue failed",
				"event", "score_enqueue_failed",
				"module", "sales-acquisition/campaign-service",
				"layer", "application",
				"lead_id", message.LeadID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("engagement recorded",
		"event", "engagement_recorded",
		"module", "sales-acquisition/campaign-service",
		"layer", "application",
		"message_id", message.MessageID,
		"from_status", string(from),
		"to_status", string(cmd.Status),
	)
	return nil
}

func bumpMetrics(metrics *entities.Metrics, variantName string, status entities.MessageStatus) {
	switch status {
	case entities.MessageStatusSent:
		metrics.Sent++
	case entities.MessageStatusDelivered:
		metrics.Delivered++
	case entities.MessageStatusOpened:
		metrics.Opened++
	case entities.MessageStatusClicked:
		metrics.Clicked++
	case entities.MessageStatusReplied:
		metrics.Replied++
	case entities.MessageStatusBounced:
		metrics.Bounced++
	case entities.MessageStatusFailed:
		metrics.Failed++
	}

	if variantName == "" {
		return
	}
	if metrics.ByVariant == nil {
		metrics.ByVariant = make(map[string]entities.VariantMetrics)
	}
	counters := metrics.ByVariant[variantName]
	switch status {
	case entities.MessageStatusSent:
		counters.Sent++
	case entities.MessageStatusOpened:
		counters.Opened++
	case entities.MessageStatusClicked:
		counters.Clicked++
	case entities.MessageStatusReplied:
		counters.Replied++
	}
	metrics.ByVariant[variantName] = counters
}
