package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

const fallbackVendor = "aggregator"

// TaskScoreLead is enqueued for every lead touched by a merge.
const TaskScoreLead = "lead.score"

type MergeCommand struct {
	AccountID  string
	Candidates []entities.Candidate
}

type MergeResult struct {
	Created int
	Updated int
	Skipped int
	LeadIDs []string
}

// MergeCandidatesUseCase resolves identity keys and upsert-merges a raw
// candidate stream into canonical leads. Safe to replay with the same or
// overlapping input: the same identities converge to the same rows.
type MergeCandidatesUseCase struct {
	Leads  ports.LeadRepository
	Tasks  ports.TaskQueue
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc MergeCandidatesUseCase) Execute(ctx context.Context, cmd MergeCommand) (MergeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return MergeResult{}, domainerrors.ErrAccountRequired
	}

	var result MergeResult
	seen := make(map[string]bool, len(cmd.Candidates))
	for _, candidate := range cmd.Candidates {
		key := candidate.IdentityKey()
		if key == "" {
			result.Skipped++
			continue
		}
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true

		leadID, created, err := uc.upsert(ctx, accountID, candidate)
		if err != nil {
			// One bad candidate never aborts the batch.
			result.Skipped++
			logger.Warn("candidate upsert failed",
				"event", "lead_candidate_upsert_failed",
				"module", "sales-acquisition/lead-service",
				"layer", "application",
				"identity_key", key,
				"error", err.Error(),
			)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		result.LeadIDs = append(result.LeadIDs, leadID)
		uc.enqueueScore(ctx, accountID, leadID, logger)
	}

	logger.Info("candidate batch merged",
		"event", "lead_candidates_merged",
		"module", "sales-acquisition/lead-service",
		"layer", "application",
		"account_id", accountID,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (uc MergeCandidatesUseCase) upsert(ctx context.Context, accountID string, candidate entities.Candidate) (string, bool, error) {
	existing, err := uc.findExisting(ctx, accountID, candidate)
	if err == nil {
		return existing.LeadID, false, uc.mergeInto(ctx, existing, candidate)
	}
	if !errors.Is(err, domainerrors.ErrLeadNotFound) {
		return "", false, err
	}

	leadID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return "", false, err
	}
	now := uc.Clock.Now().UTC()
	lead := entities.Lead{
		LeadID:    leadID,
		AccountID: accountID,
		Status:    entities.LeadStatusNew,
		CreatedAt: now,
	}
	lead.Merge(candidate)
	stampAttribution(&lead, candidate, now)
	lead.UpdatedAt = now

	if err := uc.Leads.CreateLead(ctx, lead); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateLead) {
			// Lost a race with a concurrent run; converge by merging into
			// the winner instead.
			winner, ferr := uc.findExisting(ctx, accountID, candidate)
			if ferr != nil {
				return "", false, ferr
			}
			return winner.LeadID, false, uc.mergeInto(ctx, winner, candidate)
		}
		return "", false, err
	}
	return lead.LeadID, true, nil
}

func (uc MergeCandidatesUseCase) mergeInto(ctx context.Context, lead entities.Lead, candidate entities.Candidate) error {
	now := uc.Clock.Now().UTC()
	lead.Merge(candidate)
	stampAttribution(&lead, candidate, now)
	lead.UpdatedAt = now
	return uc.Leads.UpdateLead(ctx, lead)
}

func (uc MergeCandidatesUseCase) findExisting(ctx context.Context, accountID string, candidate entities.Candidate) (entities.Lead, error) {
	if email := entities.NormalizeEmail(candidate.Email); email != "" {
		return uc.Leads.FindLeadByEmail(ctx, accountID, email)
	}
	return uc.Leads.FindLeadByExternalID(ctx, accountID, strings.TrimSpace(candidate.Source), strings.TrimSpace(candidate.ExternalID))
}

func (uc MergeCandidatesUseCase) enqueueScore(ctx context.Context, accountID, leadID string, logger *slog.Logger) {
	if uc.Tasks == nil {
		return
	}
	err := uc.Tasks.Enqueue(ctx, TaskScoreLead, map[string]any{
		"account_id": accountID,
		"lead_id":    leadID,
	})
	if err != nil {
		logger.Warn("score task enqueue failed",
			"event", "lead_score_enqueue_failed",
			"module", "sales-acquisition/lead-service",
			"layer", "application",
			"lead_id", leadID,
			"error", err.Error(),
		)
	}
}

func stampAttribution(lead *entities.Lead, candidate entities.Candidate, now time.Time) {
	vendor := strings.TrimSpace(candidate.Source)
	if vendor == "" {
		vendor = fallbackVendor
	}
	lead.Attribution = entities.Attribution{Vendor: vendor, FetchedAt: now}
	if strings.TrimSpace(lead.Source) == "" {
		lead.Source = fallbackVendor
	}
}
