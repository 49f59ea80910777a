package apollo

import (
	"fmt"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
)

// Apollo answers with inconsistent field names across record shapes, so
// every field is probed through a fixed priority order of known paths and
// the first present value wins.

const lockedEmailPlaceholder = "email_not_unlocked@domain.com"

func peopleList(body map[string]any) []map[string]any {
	for _, key := range []string{"people", "contacts", "results"} {
		raw, ok := body[key].([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			if person, ok := item.(map[string]any); ok {
				out = append(out, person)
			}
		}
		return out
	}
	return nil
}

// nextPageIndicated prefers the pagination block when the API sends one
// and falls back to the full-page heuristic otherwise.
func nextPageIndicated(body map[string]any, got, perPage int) bool {
	if pagination, ok := body["pagination"].(map[string]any); ok {
		page := asInt(pagination["page"])
		totalPages := asInt(pagination["total_pages"])
		if page > 0 && totalPages > 0 {
			return page < totalPages
		}
	}
	return got > 0 && got == perPage
}

func mapPeople(people []map[string]any) []entities.Candidate {
	out := make([]entities.Candidate, 0, len(people))
	for _, person := range people {
		candidate, ok := mapPerson(person)
		if ok {
			out = append(out, candidate)
		}
	}
	return out
}

func mapPerson(p map[string]any) (entities.Candidate, bool) {
	email := firstString(
		str(p["email"]),
		nestedEmail(p["emails"]),
	)
	firstName := firstString(
		str(p["first_name"]),
		dig(p, "name", "first"),
		nameWord(str(p["name"]), 0),
	)
	lastName := firstString(
		str(p["last_name"]),
		dig(p, "name", "last"),
		nameWord(str(p["name"]), -1),
	)
	externalID := firstString(
		str(p["id"]),
		str(p["contact_id"]),
		str(p["person_id"]),
	)

	// Records contributing no name, no email and no id are noise.
	if firstName == "" && lastName == "" && email == "" && externalID == "" {
		return entities.Candidate{}, false
	}

	candidate := entities.Candidate{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Company: firstString(
			dig(p, "organization", "name"),
			str(p["organization_name"]),
			dig(p, "company", "name"),
			str(p["company"]),
		),
		JobTitle: firstString(
			str(p["title"]),
			str(p["person_title"]),
			str(p["headline"]),
		),
		LinkedinURL: firstString(
			str(p["linkedin_url"]),
			str(p["linkedin_profile_url"]),
			dig(p, "organization", "linkedin_url"),
		),
		ExternalID: externalID,
		Source:     "apollo",
		Locked:     strings.EqualFold(email, lockedEmailPlaceholder),
	}

	enrichment := map[string]string{}
	if v := firstString(dig(p, "organization", "estimated_num_employees"), dig(p, "company", "employee_count")); v != "" {
		enrichment["company_size"] = v
	}
	if v := firstString(dig(p, "organization", "annual_revenue"), dig(p, "company", "revenue")); v != "" {
		enrichment["revenue"] = v
	}
	if v := firstString(dig(p, "organization", "industry"), dig(p, "company", "industry")); v != "" {
		enrichment["industry"] = v
	}
	if len(enrichment) > 0 {
		candidate.Enrichment = enrichment
	}
	return candidate, true
}

func dig(m map[string]any, keys ...string) string {
	current := any(m)
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = node[key]
	}
	return str(current)
}

// nestedEmail handles both list shapes: a list of email objects and a
// bare list of strings.
func nestedEmail(raw any) string {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	switch first := list[0].(type) {
	case map[string]any:
		return str(first["email"])
	case string:
		return strings.TrimSpace(first)
	default:
		return ""
	}
}

func nameWord(full string, index int) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	if index < 0 {
		index = len(fields) - 1
	}
	if index >= len(fields) {
		return ""
	}
	return fields[index]
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func str(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}

func asInt(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
