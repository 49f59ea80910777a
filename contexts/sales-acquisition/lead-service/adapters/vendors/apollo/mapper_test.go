package apollo

import "testing"

func TestMapPersonProbesAlternateFieldShapes(t *testing.T) {
	person := map[string]any{
		"name":      "Ada Polk",
		"emails":    []any{map[string]any{"email": "ada@northwind.example"}},
		"person_id": "p-1",
		"organization_name": "Northwind Analytics",
		"headline":          "CTO",
	}

	candidate, ok := mapPerson(person)
	if !ok {
		t.Fatalf("expected person to map")
	}
	if candidate.FirstName != "Ada" || candidate.LastName != "Polk" {
		t.Fatalf("expected name split from full name, got %q %q", candidate.FirstName, candidate.LastName)
	}
	if candidate.Email != "ada@northwind.example" {
		t.Fatalf("expected nested email probed, got %q", candidate.Email)
	}
	if candidate.Company != "Northwind Analytics" {
		t.Fatalf("expected organization_name probed, got %q", candidate.Company)
	}
	if candidate.JobTitle != "CTO" {
		t.Fatalf("expected headline probed for title, got %q", candidate.JobTitle)
	}
	if candidate.ExternalID != "p-1" {
		t.Fatalf("expected person_id probed, got %q", candidate.ExternalID)
	}
}

func TestMapPersonPrefersPrimaryFields(t *testing.T) {
	person := map[string]any{
		"first_name": "Omar",
		"last_name":  "Reyes",
		"email":      "omar@cloudline.example",
		"id":         "a-77",
		"organization": map[string]any{
			"name":                    "Cloudline Systems",
			"estimated_num_employees": float64(250),
			"industry":                "software",
		},
		"title": "VP Engineering",
	}

	candidate, ok := mapPerson(person)
	if !ok {
		t.Fatalf("expected person to map")
	}
	if candidate.Company != "Cloudline Systems" {
		t.Fatalf("expected organization.name to win, got %q", candidate.Company)
	}
	if candidate.Enrichment["company_size"] != "250" {
		t.Fatalf("expected numeric employee count mapped, got %v", candidate.Enrichment)
	}
	if candidate.Enrichment["industry"] != "software" {
		t.Fatalf("expected industry enrichment, got %v", candidate.Enrichment)
	}
}

func TestMapPersonDropsNoiseRecords(t *testing.T) {
	if _, ok := mapPerson(map[string]any{"title": "CEO"}); ok {
		t.Fatalf("expected record without name, email and id to be dropped")
	}
}

func TestMapPersonFlagsLockedEmailPlaceholder(t *testing.T) {
	candidate, ok := mapPerson(map[string]any{
		"first_name": "Priya",
		"email":      "email_not_unlocked@domain.com",
		"id":         "p-9",
	})
	if !ok {
		t.Fatalf("expected locked record to map")
	}
	if !candidate.Locked {
		t.Fatalf("expected locked-email placeholder to set Locked")
	}
}

func TestNextPageIndicatedFallsBackToFullPageHeuristic(t *testing.T) {
	if !nextPageIndicated(map[string]any{}, 25, 25) {
		t.Fatalf("expected a full page without pagination block to indicate more")
	}
	if nextPageIndicated(map[string]any{}, 10, 25) {
		t.Fatalf("expected a short page to indicate the end")
	}
	body := map[string]any{"pagination": map[string]any{"page": float64(2), "total_pages": float64(2)}}
	if nextPageIndicated(body, 25, 25) {
		t.Fatalf("expected pagination block to win over the heuristic")
	}
}
