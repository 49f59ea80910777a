package entities

import "time"

type ActivityMetadata struct {
	Channel     Channel
	ScheduledAt time.Time
	StepIndex   int
}

// Activity records a non-email touchpoint or a logged interaction with a
// lead.
type Activity struct {
	ActivityID string
	AccountID  string
	LeadID     string
	CampaignID string
	Kind       string
	Content    string
	HappenedAt time.Time
	Metadata   ActivityMetadata
	CreatedAt  time.Time
}
