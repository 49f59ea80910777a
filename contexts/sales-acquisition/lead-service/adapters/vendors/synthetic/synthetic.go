package synthetic

import (
	"fmt"
	"hash/fnv"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

// Package synthetic produces the deterministic fallback result sets the
// vendor adapters serve when they are disabled, hold no credential, or
// their API ultimately fails. Seeding from the filters keeps downstream
// behavior reproducible without a live network dependency.

type Profile struct {
	FirstName string
	LastName  string
	Company   string
	JobTitle  string
}

// Seed hashes the filter set into a small stable number.
func Seed(filters ports.SearchFilters) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(filters.Keywords)))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strings.ToLower(filters.Role)))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strings.ToLower(filters.Location)))
	return h.Sum32() % 1000
}

// Candidates renders one candidate per profile, stamped with the vendor
// source and a filter-derived seed so identical searches produce
// identical identities.
func Candidates(source string, filters ports.SearchFilters, profiles []Profile) []entities.Candidate {
	seed := Seed(filters)
	out := make([]entities.Candidate, 0, len(profiles))
	for i, profile := range profiles {
		out = append(out, entities.Candidate{
			FirstName:  profile.FirstName,
			LastName:   profile.LastName,
			Email:      fmt.Sprintf("%s%d@example.com", strings.ToLower(profile.FirstName), seed),
			Company:    profile.Company,
			JobTitle:   profile.JobTitle,
			Location:   strings.TrimSpace(filters.Location),
			ExternalID: fmt.Sprintf("%s-%d-%d", source, seed, i),
			Source:     source,
		})
	}
	return out
}
