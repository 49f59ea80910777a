package entities

import (
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusResearching LeadStatus = "researching"
	LeadStatusEnriched    LeadStatus = "enriched"
	LeadStatusOutreach    LeadStatus = "outreach"
	LeadStatusScheduled   LeadStatus = "scheduled"
	LeadStatusResponded   LeadStatus = "responded"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
	LeadStatusArchived    LeadStatus = "archived"
)

// Attribution records which vendor last contributed to a lead and when.
type Attribution struct {
	Vendor    string
	FetchedAt time.Time
}

type Lead struct {
	LeadID          string
	AccountID       string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Company         string
	JobTitle        string
	Location        string
	LinkedinURL     string
	Website         string
	Status          LeadStatus
	Source          string
	ExternalID      string
	Score           int
	Tags            []string
	Enrichment      map[string]string
	Attribution     Attribution
	DoNotContact    bool
	Locked          bool
	LastContactedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func IsSupportedLeadStatus(value LeadStatus) bool {
	switch value {
	case LeadStatusNew, LeadStatusResearching, LeadStatusEnriched,
		LeadStatusOutreach, LeadStatusScheduled, LeadStatusResponded,
		LeadStatusWon, LeadStatusLost, LeadStatusArchived:
		return true
	default:
		return false
	}
}

func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IdentityKey is the dedup key for a persisted lead: the normalized email
// when present, otherwise source plus external id. Empty means the lead
// cannot be tracked across discovery runs.
func (l Lead) IdentityKey() string {
	return identityKey(l.Email, l.Source, l.ExternalID)
}

// Merge folds an incoming candidate into the lead. Incoming non-empty
// scalar fields overwrite, enrichment is merged key by key, keys absent
// from the incoming payload are preserved.
func (l *Lead) Merge(c Candidate) {
	if v := strings.TrimSpace(c.FirstName); v != "" {
		l.FirstName = v
	}
	if v := strings.TrimSpace(c.LastName); v != "" {
		l.LastName = v
	}
	if v := NormalizeEmail(c.Email); v != "" {
		l.Email = v
	}
	if v := strings.TrimSpace(c.Company); v != "" {
		l.Company = v
	}
	if v := strings.TrimSpace(c.JobTitle); v != "" {
		l.JobTitle = v
	}
	if v := strings.TrimSpace(c.Location); v != "" {
		l.Location = v
	}
	if v := strings.TrimSpace(c.Phone); v != "" {
		l.Phone = v
	}
	if v := strings.TrimSpace(c.Website); v != "" {
		l.Website = v
	}
	if v := strings.TrimSpace(c.LinkedinURL); v != "" {
		l.LinkedinURL = v
	}
	if v := strings.TrimSpace(c.ExternalID); v != "" {
		l.ExternalID = v
	}
	if v := strings.TrimSpace(c.Source); v != "" {
		l.Source = v
	}
	if c.Locked {
		l.Locked = true
	}
	if len(c.Enrichment) > 0 {
		if l.Enrichment == nil {
			l.Enrichment = make(map[string]string, len(c.Enrichment))
		}
		for key, value := range c.Enrichment {
			l.Enrichment[key] = value
		}
	}
}

func identityKey(email, source, externalID string) string {
	if v := NormalizeEmail(email); v != "" {
		return v
	}
	source = strings.TrimSpace(source)
	externalID = strings.TrimSpace(externalID)
	if source != "" && externalID != "" {
		return source + ":" + externalID
	}
	return ""
}
