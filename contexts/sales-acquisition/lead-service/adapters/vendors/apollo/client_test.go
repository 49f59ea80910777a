package apollo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"prospector/contexts/sales-acquisition/lead-service/ports"
)

func testConfig(baseURL string) Config {
	return Config{
		Enabled:           true,
		APIKey:            "test-key",
		BaseURL:           baseURL,
		RetryDelay:        time.Millisecond,
		RequestsPerSecond: 1000,
	}
}

func peoplePage(count, offset, page, totalPages int) map[string]any {
	people := make([]any, 0, count)
	for i := 0; i < count; i++ {
		people = append(people, map[string]any{
			"id":         fmt.Sprintf("apollo-%d", offset+i),
			"first_name": fmt.Sprintf("Person%d", offset+i),
			"email":      fmt.Sprintf("person%d@example.com", offset+i),
		})
	}
	return map[string]any{
		"people":     people,
		"pagination": map[string]any{"page": page, "total_pages": totalPages},
	}
}

func TestSearchPeopleRequestsCeilOfLimitOverPageSize(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := int(requests.Add(1))
		count := 20
		if page == 3 {
			count = 10
		}
		_ = json.NewEncoder(w).Encode(peoplePage(count, (page-1)*20, page, 3))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.PerPage = 20
	cfg.ResultLimit = 50
	client := New(cfg, nil)

	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas", Limit: 50})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected ceil(50/20)=3 page requests, got %d", got)
	}
	if len(out) != 50 {
		t.Fatalf("expected 50 candidates, got %d", len(out))
	}
}

func TestSearchPeopleRetriesRateLimitedPage(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(peoplePage(2, 0, 1, 1))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas", Limit: 5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected one retry after 429, got %d requests", got)
	}
	if len(out) != 2 {
		t.Fatalf("expected the retried page's candidates, got %d", len(out))
	}
}

func TestSearchPeopleFallsBackWhenEveryPageFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	filters := ports.SearchFilters{Keywords: "saas", Role: "CTO", Limit: 3}

	first, err := client.SearchPeople(context.Background(), filters)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected synthetic fallback candidates")
	}
	second, err := client.SearchPeople(context.Background(), filters)
	if err != nil {
		t.Fatalf("second search failed: %v", err)
	}
	if len(first) != len(second) || first[0].Email != second[0].Email {
		t.Fatalf("expected deterministic fallback for identical filters")
	}
	for _, candidate := range first {
		if candidate.Source != "apollo" {
			t.Fatalf("expected fallback candidates attributed to apollo, got %q", candidate.Source)
		}
	}
}

func TestSearchPeopleAbortsOnRejectedCredential(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas", Limit: 5})
	if err != nil {
		t.Fatalf("expected credential failure to degrade, got %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected no retry on 401, got %d requests", got)
	}
	if len(out) == 0 {
		t.Fatalf("expected synthetic fallback after credential rejection")
	}
}

func TestSearchPeopleDisabledMakesNoRequests(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Enabled = false
	client := New(cfg, nil)

	if client.Ready() {
		t.Fatalf("expected disabled client to report not ready")
	}
	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if out != nil || requests.Load() != 0 {
		t.Fatalf("expected empty result without network I/O, got %d candidates %d requests", len(out), requests.Load())
	}
}

func TestSearchPeopleMissingKeyUsesFallbackWithoutRequests(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""
	client := New(cfg, nil)

	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas", Limit: 3})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out) == 0 || requests.Load() != 0 {
		t.Fatalf("expected synthetic candidates and zero requests, got %d candidates %d requests", len(out), requests.Load())
	}
}

func TestSearchPeopleCapsOutputAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(peoplePage(10, 0, 1, 1))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), nil)
	out, err := client.SearchPeople(context.Background(), ports.SearchFilters{Keywords: "saas", Limit: 4})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected output capped at limit 4, got %d", len(out))
	}
}
