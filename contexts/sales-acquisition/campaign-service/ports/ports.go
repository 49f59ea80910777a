package ports

import (
	"context"
	"time"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
)

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, accountID, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, accountID string) ([]entities.Campaign, error)
}

type MessageRepository interface {
	CreateMessage(ctx context.Context, message entities.OutboundMessage) error
	UpdateMessage(ctx context.Context, message entities.OutboundMessage) error
	GetMessage(ctx context.Context, accountID, messageID string) (entities.OutboundMessage, error)
	// FindStepMessage reports whether a campaign step already produced a
	// message for a lead. Absence is ErrMessageNotFound.
	FindStepMessage(ctx context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.OutboundMessage, error)
	CountMessagesByStatus(ctx context.Context, accountID, leadID string) (map[string]int, error)
}

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity entities.Activity) error
	FindStepActivity(ctx context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.Activity, bool, error)
	CountActivities(ctx context.Context, accountID, leadID string) (int, error)
}

// Recipient is the slice of a lead the sequencer needs. The lead store lives
// in another service; LeadSource keeps this context decoupled from it.
type Recipient struct {
	LeadID       string
	Email        string
	FirstName    string
	LastName     string
	Company      string
	DoNotContact bool
	Locked       bool
}

type LeadSource interface {
	ListAudience(ctx context.Context, accountID string, filter entities.AudienceFilter) ([]Recipient, error)
	MarkContacted(ctx context.Context, accountID, leadID string, at time.Time) error
}

type TaskQueue interface {
	Enqueue(ctx context.Context, task string, args map[string]any) error
}

type RandSource interface {
	Intn(n int) int
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
