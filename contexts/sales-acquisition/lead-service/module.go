package leadservice

import (
	"log/slog"

	"prospector/contexts/sales-acquisition/lead-service/adapters/memory"
	"prospector/contexts/sales-acquisition/lead-service/application/commands"
	"prospector/contexts/sales-acquisition/lead-service/application/queries"
	"prospector/contexts/sales-acquisition/lead-service/application/workers"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/domain/score"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type Module struct {
	Discover commands.DiscoverLeadsUseCase
	Import   commands.ImportLeadsUseCase
	Merge    commands.MergeCandidatesUseCase
	Score    commands.ScoreLeadUseCase

	GetLead     queries.GetLeadUseCase
	SearchLeads queries.SearchLeadsUseCase

	DiscoveryJob workers.DiscoveryJob
	ImportJob    workers.ImportJob
	ScoreJob     workers.ScoreJob

	Store *memory.Store
}

type Dependencies struct {
	Leads       ports.LeadRepository
	Vendors     []ports.VendorClient
	Engagement  ports.EngagementSource
	Tasks       ports.TaskQueue
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	MinResults  int
	Weights     score.Weights
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	merge := commands.MergeCandidatesUseCase{
		Leads:  deps.Leads,
		Tasks:  deps.Tasks,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	discover := commands.DiscoverLeadsUseCase{
		Leads:      deps.Leads,
		Vendors:    deps.Vendors,
		Merge:      merge,
		MinResults: deps.MinResults,
		Logger:     deps.Logger,
	}
	importLeads := commands.ImportLeadsUseCase{
		Merge:  merge,
		Logger: deps.Logger,
	}
	scoreLead := commands.ScoreLeadUseCase{
		Leads:      deps.Leads,
		Engagement: deps.Engagement,
		Clock:      deps.Clock,
		Weights:    deps.Weights,
		Logger:     deps.Logger,
	}

	getLead := queries.GetLeadUseCase{
		Leads:  deps.Leads,
		Logger: deps.Logger,
	}
	searchLeads := queries.SearchLeadsUseCase{
		Leads:  deps.Leads,
		Logger: deps.Logger,
	}

	return Module{
		Discover:     discover,
		Import:       importLeads,
		Merge:        merge,
		Score:        scoreLead,
		GetLead:      getLead,
		SearchLeads:  searchLeads,
		DiscoveryJob: workers.DiscoveryJob{Discover: discover, Logger: deps.Logger},
		ImportJob:    workers.ImportJob{Import: importLeads, Logger: deps.Logger},
		ScoreJob:     workers.ScoreJob{Score: scoreLead, Logger: deps.Logger},
	}
}

func NewInMemoryModule(seed []entities.Lead, vendors []ports.VendorClient, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Leads:       store,
		Vendors:     vendors,
		Engagement:  store,
		Tasks:       store,
		Clock:       store,
		IDGenerator: store,
		Weights:     score.DefaultWeights(),
		Logger:      logger,
	})
	module.Store = store
	return module
}
