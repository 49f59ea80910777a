package commands

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

const defaultMinResults = 10

type DiscoverCommand struct {
	AccountID string
	Filters   ports.SearchFilters
}

type DiscoverResult struct {
	FromStore   int
	FromVendors int
	Merge       MergeResult
}

// DiscoverLeadsUseCase builds the candidate pool for one discovery run:
// internal store search first, then the configured vendors in priority
// order, then the dedup merge. A failing vendor contributes nothing and
// never aborts the run or its siblings.
type DiscoverLeadsUseCase struct {
	Leads      ports.LeadRepository
	Vendors    []ports.VendorClient
	Merge      MergeCandidatesUseCase
	MinResults int
	Logger     *slog.Logger
}

func (uc DiscoverLeadsUseCase) Execute(ctx context.Context, cmd DiscoverCommand) (DiscoverResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return DiscoverResult{}, domainerrors.ErrAccountRequired
	}

	minimum := uc.MinResults
	if minimum <= 0 {
		minimum = defaultMinResults
	}

	stored, err := uc.Leads.SearchLeads(ctx, accountID, cmd.Filters)
	if err != nil {
		return DiscoverResult{}, err
	}
	pool := candidatesFromLeads(stored)

	var fromVendors int
	if len(pool) < minimum {
		contributions := uc.fanOut(ctx, cmd.Filters, logger)
		for _, batch := range contributions {
			fromVendors += len(batch)
			pool = append(pool, batch...)
		}
	}

	merged, err := uc.Merge.Execute(ctx, MergeCommand{AccountID: accountID, Candidates: pool})
	if err != nil {
		return DiscoverResult{}, err
	}

	logger.Info("discovery run finished",
		"event", "lead_discovery_finished",
		"module", "sales-acquisition/lead-service",
		"layer", "application",
		"account_id", accountID,
		"from_store", len(stored),
		"from_vendors", fromVendors,
		"created", merged.Created,
		"updated", merged.Updated,
	)
	return DiscoverResult{FromStore: len(stored), FromVendors: fromVendors, Merge: merged}, nil
}

// fanOut queries every ready vendor concurrently. Results land in a slot
// per vendor so the concatenation keeps the configured priority order;
// vendor faults are logged and swallowed here, by contract.
func (uc DiscoverLeadsUseCase) fanOut(ctx context.Context, filters ports.SearchFilters, logger *slog.Logger) [][]entities.Candidate {
	contributions := make([][]entities.Candidate, len(uc.Vendors))

	var group errgroup.Group
	for i, vendor := range uc.Vendors {
		i, vendor := i, vendor
		if !vendor.Ready() {
			logger.Debug("vendor skipped",
				"event", "lead_vendor_skipped",
				"module", "sales-acquisition/lead-service",
				"layer", "application",
				"vendor", vendor.Name(),
			)
			continue
		}
		group.Go(func() error {
			results, err := vendor.SearchPeople(ctx, filters)
			if err != nil {
				logger.Warn("vendor search failed",
					"event", "lead_vendor_failed",
					"module", "sales-acquisition/lead-service",
					"layer", "application",
					"vendor", vendor.Name(),
					"error", err.Error(),
				)
				return nil
			}
			contributions[i] = results
			return nil
		})
	}
	_ = group.Wait()
	return contributions
}

func candidatesFromLeads(leads []entities.Lead) []entities.Candidate {
	out := make([]entities.Candidate, 0, len(leads))
	for _, lead := range leads {
		out = append(out, entities.Candidate{
			FirstName:   lead.FirstName,
			LastName:    lead.LastName,
			Email:       lead.Email,
			Company:     lead.Company,
			JobTitle:    lead.JobTitle,
			Location:    lead.Location,
			LinkedinURL: lead.LinkedinURL,
			ExternalID:  lead.ExternalID,
			Source:      lead.Source,
		})
	}
	return out
}
