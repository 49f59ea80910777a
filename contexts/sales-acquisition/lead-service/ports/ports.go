package ports

import (
	"context"
	"time"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
)

// SearchFilters is the shared filter shape for the internal store search
// and for vendor people searches. All present fields are ANDed.
type SearchFilters struct {
	Keywords string
	Role     string
	Location string
	Limit    int
}

// AudienceQuery selects leads for campaign targeting. Slice criteria are
// OR within a field and AND across fields; FreeText matches email,
// company and name substrings.
type AudienceQuery struct {
	Statuses   []string
	Industries []string
	Roles      []string
	Locations  []string
	FreeText   string
}

type LeadRepository interface {
	CreateLead(ctx context.Context, lead entities.Lead) error
	UpdateLead(ctx context.Context, lead entities.Lead) error
	GetLead(ctx context.Context, accountID, leadID string) (entities.Lead, error)
	FindLeadByEmail(ctx context.Context, accountID, email string) (entities.Lead, error)
	FindLeadByExternalID(ctx context.Context, accountID, source, externalID string) (entities.Lead, error)
	SearchLeads(ctx context.Context, accountID string, filters SearchFilters) ([]entities.Lead, error)
	ListLeadsByAudience(ctx context.Context, accountID string, query AudienceQuery) ([]entities.Lead, error)
}

// VendorClient is the uniform contract every external data vendor adapter
// implements. Ready must not touch the network. SearchPeople catches all
// internal faults and reports them as the error value; it never panics
// into the caller.
type VendorClient interface {
	Name() string
	Ready() bool
	SearchPeople(ctx context.Context, filters SearchFilters) ([]entities.Candidate, error)
}

// EngagementSource exposes per-lead engagement counts owned by the
// outreach side of the pipeline.
type EngagementSource interface {
	CountMessagesByStatus(ctx context.Context, accountID, leadID string) (map[string]int, error)
	CountActivities(ctx context.Context, accountID, leadID string) (int, error)
}

// TaskQueue is the job-dispatch collaborator. Task bodies elsewhere in
// the worker consume the named task with its argument map.
type TaskQueue interface {
	Enqueue(ctx context.Context, task string, args map[string]any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
