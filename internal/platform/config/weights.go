package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/domain/score"
)

type weightsFile struct {
	Status          map[string]int `yaml:"status"`
	PerOpened       *int           `yaml:"per_opened"`
	PerReplied      *int           `yaml:"per_replied"`
	PerActivity     *int           `yaml:"per_activity"`
	ExecutiveTitle  *int           `yaml:"executive_title"`
	TechnicalTitle  *int           `yaml:"technical_title"`
	TagMatch        *int           `yaml:"tag_match"`
	CompanySize     *int           `yaml:"company_size"`
	Industry        *int           `yaml:"industry"`
	PreferredVendor string         `yaml:"preferred_vendor"`
	VendorBonus     *int           `yaml:"vendor_bonus"`
	EmailPresence   *int           `yaml:"email_presence"`
	CompanyPresence *int           `yaml:"company_presence"`
	RecencyDays     *int           `yaml:"recency_days"`
}

// LoadScoringWeights reads scoring overrides from a YAML file. An empty path
// yields the defaults; file values override only the keys they set.
func LoadScoringWeights(path string) (score.Weights, error) {
	weights := score.DefaultWeights()
	if path == "" {
		return weights, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return score.Weights{}, fmt.Errorf("read scoring weights: %w", err)
	}
	var file weightsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return score.Weights{}, fmt.Errorf("parse scoring weights: %w", err)
	}

	for status, points := range file.Status {
		weights.Status[entities.LeadStatus(status)] = points
	}
	applyOverride(&weights.PerOpened, file.PerOpened)
	applyOverride(&weights.PerReplied, file.PerReplied)
	applyOverride(&weights.PerActivity, file.PerActivity)
	applyOverride(&weights.ExecutiveTitle, file.ExecutiveTitle)
	applyOverride(&weights.TechnicalTitle, file.TechnicalTitle)
	applyOverride(&weights.TagMatch, file.TagMatch)
	applyOverride(&weights.CompanySize, file.CompanySize)
	applyOverride(&weights.Industry, file.Industry)
	applyOverride(&weights.VendorBonus, file.VendorBonus)
	applyOverride(&weights.EmailPresence, file.EmailPresence)
	applyOverride(&weights.CompanyPresence, file.CompanyPresence)
	applyOverride(&weights.RecencyDays, file.RecencyDays)
	if file.PreferredVendor != "" {
		weights.PreferredVendor = file.PreferredVendor
	}
	return weights, nil
}

func applyOverride(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}
