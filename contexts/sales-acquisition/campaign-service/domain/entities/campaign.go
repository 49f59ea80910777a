package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusRunning   CampaignStatus = "running"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"
)

// AudienceFilter selects which leads a campaign run touches. All populated
// criteria must match.
type AudienceFilter struct {
	Statuses   []string
	Industries []string
	Roles      []string
	Locations  []string
	FreeText   string
}

func (f AudienceFilter) Empty() bool {
	return len(f.Statuses) == 0 &&
		len(f.Industries) == 0 &&
		len(f.Roles) == 0 &&
		len(f.Locations) == 0 &&
		strings.TrimSpace(f.FreeText) == ""
}

// Metrics accumulates engagement counters for a campaign, both in total and
// per message variant.
type Metrics struct {
	Queued    int
	Sent      int
	Delivered int
	Opened    int
	Clicked   int
	Replied   int
	Bounced   int
	Failed    int
	ByVariant map[string]VariantMetrics
}

type VariantMetrics struct {
	Sent    int
	Opened  int
	Clicked int
	Replied int
}

type Campaign struct {
	CampaignID string
	AccountID  string
	Name       string
	Status     CampaignStatus
	Audience   AudienceFilter
	Sequence   []Step
	Metrics    Metrics
	CreatedAt  time.Time
	UpdatedAt  time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
}

func (c Campaign) CanEdit() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusPaused
}

func (c Campaign) Runnable() bool {
	return c.Status == CampaignStatusScheduled || c.Status == CampaignStatusRunning
}

func (c Campaign) ValidateBasics() bool {
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > 200 {
		return false
	}
	for _, step := range c.Sequence {
		if !step.Valid() {
			return false
		}
	}
	return true
}
