package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"prospector/contexts/sales-acquisition/lead-service/adapters/memory"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type stubVendor struct {
	name       string
	ready      bool
	candidates []entities.Candidate
	err        error
	calls      int
}

func (v *stubVendor) Name() string { return v.name }
func (v *stubVendor) Ready() bool  { return v.ready }

func (v *stubVendor) SearchPeople(_ context.Context, _ ports.SearchFilters) ([]entities.Candidate, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.candidates, nil
}

func newDiscoverUseCase(store *memory.Store, vendors ...ports.VendorClient) DiscoverLeadsUseCase {
	return DiscoverLeadsUseCase{
		Leads:   store,
		Vendors: vendors,
		Merge:   newMergeUseCase(store),
	}
}

func TestDiscoverThreeVendorOverlapYieldsTwoLeads(t *testing.T) {
	store := memory.NewStore(nil)
	shared := entities.Candidate{Email: "ada@northwind.example", FirstName: "Ada", Source: "apollo"}
	other := entities.Candidate{Email: "omar@cloudline.example", FirstName: "Omar", Source: "linkedin"}

	discover := newDiscoverUseCase(store,
		&stubVendor{name: "apollo", ready: true, candidates: []entities.Candidate{shared}},
		&stubVendor{name: "linkedin", ready: true, candidates: []entities.Candidate{shared, other}},
		&stubVendor{name: "hubspot", ready: true, candidates: []entities.Candidate{shared}},
	)

	result, err := discover.Execute(context.Background(), DiscoverCommand{
		AccountID: "acct-1",
		Filters:   ports.SearchFilters{Keywords: "saas"},
	})
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if result.Merge.Created != 2 {
		t.Fatalf("expected exactly 2 leads from overlapping vendors, got %+v", result.Merge)
	}
}

func TestDiscoverShortCircuitsWhenStoreSatisfiesMinimum(t *testing.T) {
	seed := make([]entities.Lead, 0, 3)
	for i := 0; i < 3; i++ {
		seed = append(seed, entities.Lead{
			LeadID:    fmt.Sprintf("lead-%d", i),
			AccountID: "acct-1",
			Email:     fmt.Sprintf("person%d@saas.example", i),
			Company:   "SaaS Co",
			Status:    entities.LeadStatusNew,
		})
	}
	store := memory.NewStore(seed)

	vendor := &stubVendor{name: "apollo", ready: true}
	discover := newDiscoverUseCase(store, vendor)
	discover.MinResults = 2

	result, err := discover.Execute(context.Background(), DiscoverCommand{
		AccountID: "acct-1",
		Filters:   ports.SearchFilters{Keywords: "saas"},
	})
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if vendor.calls != 0 {
		t.Fatalf("expected no vendor calls when the store satisfies the minimum, got %d", vendor.calls)
	}
	if result.FromStore != 3 || result.FromVendors != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestDiscoverIsolatesVendorFaults(t *testing.T) {
	store := memory.NewStore(nil)
	healthy := entities.Candidate{Email: "priya@signalharbor.example", Source: "hubspot"}

	discover := newDiscoverUseCase(store,
		&stubVendor{name: "apollo", ready: true, err: errors.New("upstream 500")},
		&stubVendor{name: "hubspot", ready: true, candidates: []entities.Candidate{healthy}},
	)

	result, err := discover.Execute(context.Background(), DiscoverCommand{
		AccountID: "acct-1",
		Filters:   ports.SearchFilters{Keywords: "saas"},
	})
	if err != nil {
		t.Fatalf("expected vendor fault to be swallowed, got %v", err)
	}
	if result.Merge.Created != 1 {
		t.Fatalf("expected the healthy vendor's candidate persisted, got %+v", result.Merge)
	}
}

func TestDiscoverSkipsNotReadyVendors(t *testing.T) {
	store := memory.NewStore(nil)
	offline := &stubVendor{name: "salesforce", ready: false, candidates: []entities.Candidate{
		{Email: "never@seen.example", Source: "salesforce"},
	}}

	discover := newDiscoverUseCase(store, offline)
	if _, err := discover.Execute(context.Background(), DiscoverCommand{
		AccountID: "acct-1",
		Filters:   ports.SearchFilters{Keywords: "saas"},
	}); err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if offline.calls != 0 {
		t.Fatalf("expected not-ready vendor to be skipped, got %d calls", offline.calls)
	}
}
