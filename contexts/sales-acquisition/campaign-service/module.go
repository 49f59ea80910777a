package campaignservice

import (
	"log/slog"
	"math/rand"

	"prospector/contexts/sales-acquisition/campaign-service/adapters/memory"
	"prospector/contexts/sales-acquisition/campaign-service/application/commands"
	"prospector/contexts/sales-acquisition/campaign-service/application/queries"
	"prospector/contexts/sales-acquisition/campaign-service/application/workers"
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

type Module struct {
	CreateCampaign   commands.CreateCampaignUseCase
	ChangeStatus     commands.ChangeStatusUseCase
	RunCampaign      commands.RunCampaignUseCase
	RecordEngagement commands.RecordEngagementUseCase

	GetCampaign   queries.GetCampaignUseCase
	ListCampaigns queries.ListCampaignsUseCase

	RunJob workers.CampaignRunJob

	Store *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	Messages    ports.MessageRepository
	Activities  ports.ActivityRepository
	Leads       ports.LeadSource
	Tasks       ports.TaskQueue
	Rand        ports.RandSource
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	changeStatus := commands.ChangeStatusUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	runCampaign := commands.RunCampaignUseCase{
		Campaigns:  deps.Campaigns,
		Messages:   deps.Messages,
		Activities: deps.Activities,
		Leads:      deps.Leads,
		Selector:   commands.VariantSelector{Rand: deps.Rand},
		Clock:      deps.Clock,
		IDGen:      deps.IDGenerator,
		Logger:     deps.Logger,
	}
	recordEngagement := commands.RecordEngagementUseCase{
		Campaigns: deps.Campaigns,
		Messages:  deps.Messages,
		Leads:     deps.Leads,
		Tasks:     deps.Tasks,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}

	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}

	return Module{
		CreateCampaign:   createCampaign,
		ChangeStatus:     changeStatus,
		RunCampaign:      runCampaign,
		RecordEngagement: recordEngagement,
		GetCampaign:      getCampaign,
		ListCampaigns:    listCampaigns,
		RunJob:           workers.CampaignRunJob{Run: runCampaign, Logger: deps.Logger},
	}
}

func NewInMemoryModule(seed []entities.Campaign, leads ports.LeadSource, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:   store,
		Messages:    store,
		Activities:  store,
		Leads:       leads,
		Tasks:       store,
		Rand:        rand.New(rand.NewSource(1)),
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
