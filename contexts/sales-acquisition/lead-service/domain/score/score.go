package score

import (
	"strings"
	"time"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
)

// Signals are the engagement counts related to one lead.
type Signals struct {
	Opened     int
	Replied    int
	Activities int
}

// Weights holds every tunable point value of the scoring heuristic.
// Zero-value weights are legal; DefaultWeights matches production tuning.
type Weights struct {
	Status          map[entities.LeadStatus]int
	PerOpened       int
	PerReplied      int
	PerActivity     int
	ExecutiveTitle  int
	TechnicalTitle  int
	TagMatch        int
	CompanySize     int
	Industry        int
	PreferredVendor string
	VendorBonus     int
	EmailPresence   int
	CompanyPresence int
	RecencyDays     int
	Floor           int
	Ceiling         int
}

func DefaultWeights() Weights {
	return Weights{
		Status: map[entities.LeadStatus]int{
			entities.LeadStatusWon:       80,
			entities.LeadStatusResponded: 60,
			entities.LeadStatusScheduled: 40,
			entities.LeadStatusOutreach:  20,
			entities.LeadStatusEnriched:  10,
			entities.LeadStatusArchived:  -20,
			entities.LeadStatusLost:      -20,
		},
		PerOpened:       2,
		PerReplied:      8,
		PerActivity:     1,
		ExecutiveTitle:  40,
		TechnicalTitle:  15,
		TagMatch:        25,
		CompanySize:     10,
		Industry:        5,
		PreferredVendor: "apollo",
		VendorBonus:     5,
		EmailPresence:   5,
		CompanyPresence: 5,
		RecencyDays:     14,
		Floor:           0,
		Ceiling:         100,
	}
}

var executiveTitles = []string{
	"cto",
	"chief technology officer",
	"vp engineering",
	"vp of engineering",
	"head of engineering",
	"ceo",
	"founder",
	"co-founder",
}

var technicalTitles = []string{
	"engineer",
	"developer",
	"architect",
	"devops",
	"engineering",
	"technical",
}

var hotTags = []string{
	"saas", "ai", "cloud", "kubernetes", "devops",
	"ml", "data", "analytics", "automation",
}

// Compute is the pure scoring function. Deterministic for identical
// inputs, no side effects, result clamped to [Floor, Ceiling].
func Compute(lead entities.Lead, sig Signals, now time.Time, w Weights) int {
	total := w.Status[lead.Status]

	total += sig.Opened * w.PerOpened
	total += sig.Replied * w.PerReplied
	total += sig.Activities * w.PerActivity

	total += titlePoints(lead.JobTitle, w)

	if tagsIntersect(lead.Tags) {
		total += w.TagMatch
	}
	if lead.Enrichment["company_size"] != "" {
		total += w.CompanySize
	}
	if lead.Enrichment["industry"] != "" {
		total += w.Industry
	}
	if w.PreferredVendor != "" && lead.Source == w.PreferredVendor {
		total += w.VendorBonus
	}
	if strings.TrimSpace(lead.Email) != "" {
		total += w.EmailPresence
	}
	if strings.TrimSpace(lead.Company) != "" {
		total += w.CompanyPresence
	}
	total += recencyBonus(lead.LastContactedAt, now, w.RecencyDays)

	return clamp(total, w.Floor, w.Ceiling)
}

// titlePoints applies the higher tier only: an executive match wins over
// a broader technical keyword match.
func titlePoints(title string, w Weights) int {
	lowered := strings.ToLower(strings.TrimSpace(title))
	if lowered == "" {
		return 0
	}
	for _, needle := range executiveTitles {
		if strings.Contains(lowered, needle) {
			return w.ExecutiveTitle
		}
	}
	for _, needle := range technicalTitles {
		if strings.Contains(lowered, needle) {
			return w.TechnicalTitle
		}
	}
	return 0
}

func tagsIntersect(tags []string) bool {
	for _, tag := range tags {
		lowered := strings.ToLower(strings.TrimSpace(tag))
		for _, hot := range hotTags {
			if lowered == hot {
				return true
			}
		}
	}
	return false
}

// recencyBonus decays linearly inside the contact window: full points the
// day of contact, zero at windowDays and beyond, zero when never contacted.
func recencyBonus(lastContactedAt *time.Time, now time.Time, windowDays int) int {
	if lastContactedAt == nil || windowDays <= 0 {
		return 0
	}
	days := int(now.Sub(*lastContactedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return clamp(windowDays-days, 0, windowDays)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
