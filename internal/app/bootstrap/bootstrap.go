package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	campaignservice "prospector/contexts/sales-acquisition/campaign-service"
	campaignmemory "prospector/contexts/sales-acquisition/campaign-service/adapters/memory"
	campaignpostgres "prospector/contexts/sales-acquisition/campaign-service/adapters/postgres"
	campaignworkers "prospector/contexts/sales-acquisition/campaign-service/application/workers"
	campaignports "prospector/contexts/sales-acquisition/campaign-service/ports"
	leadservice "prospector/contexts/sales-acquisition/lead-service"
	leadmemory "prospector/contexts/sales-acquisition/lead-service/adapters/memory"
	leadpostgres "prospector/contexts/sales-acquisition/lead-service/adapters/postgres"
	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/apollo"
	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/hubspot"
	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/linkedin"
	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/salesforce"
	leadcommands "prospector/contexts/sales-acquisition/lead-service/application/commands"
	leadworkers "prospector/contexts/sales-acquisition/lead-service/application/workers"
	leadports "prospector/contexts/sales-acquisition/lead-service/ports"
	"prospector/internal/platform/config"
	"prospector/internal/platform/db"
	"prospector/internal/platform/jobs"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type WorkerApp struct {
	Leads     leadservice.Module
	Campaigns campaignservice.Module

	postgres   *db.Postgres
	dispatcher *jobs.Dispatcher
	workers    int
	logger     *slog.Logger
}

// BuildWorker wires the full task-processing runtime. A missing
// POSTGRES_DSN selects the in-memory adapters, which keeps local runs and
// smoke tests dependency-free.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	weights, err := config.LoadScoringWeights(cfg.ScoringWeightsPath)
	if err != nil {
		return nil, err
	}

	dispatcher := jobs.NewDispatcher(cfg.QueueSize, logger)

	var (
		pg           *db.Postgres
		leadRepo     leadports.LeadRepository
		campaignRepo campaignDeps
		leadClock    leadports.Clock
		leadIDGen    leadports.IDGenerator
		cClock       campaignports.Clock
		cIDGen       campaignports.IDGenerator
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		leadRepo = leadpostgres.NewRepository(pg.DB, logger)
		campaignRepo = campaignpostgres.NewRepository(pg.DB, logger)
		leadClock = leadpostgres.SystemClock{}
		leadIDGen = leadpostgres.UUIDGenerator{}
		cClock = campaignpostgres.SystemClock{}
		cIDGen = campaignpostgres.UUIDGenerator{}
	} else {
		leadStore := leadmemory.NewStore(nil)
		campaignStore := campaignmemory.NewStore(nil)
		leadRepo = leadStore
		campaignRepo = campaignStore
		leadClock = leadStore
		leadIDGen = leadStore
		cClock = campaignStore
		cIDGen = campaignStore
	}

	vendors := []leadports.VendorClient{
		apollo.New(apollo.Config{
			Enabled:           cfg.Apollo.Enabled,
			APIKey:            cfg.Apollo.APIKey,
			BaseURL:           cfg.Apollo.BaseURL,
			PerPage:           cfg.Apollo.PerPage,
			ResultLimit:       cfg.Apollo.ResultLimit,
			MaxRetries:        cfg.Apollo.MaxRetries,
			RetryDelay:        cfg.Apollo.RetryDelay,
			Timeout:           cfg.Apollo.Timeout,
			RequestsPerSecond: cfg.Apollo.RequestsPerSecond,
		}, logger),
		linkedin.New(linkedin.Config{}),
		hubspot.New(hubspot.Config{}),
		salesforce.New(salesforce.Config{ClientID: cfg.Salesforce.ClientID}),
	}

	leadModule := leadservice.NewModule(leadservice.Dependencies{
		Leads:       leadRepo,
		Vendors:     vendors,
		Engagement:  campaignRepo,
		Tasks:       dispatcher,
		Clock:       leadClock,
		IDGenerator: leadIDGen,
		MinResults:  cfg.MinDiscoveryResults,
		Weights:     weights,
		Logger:      logger,
	})
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:   campaignRepo,
		Messages:    campaignRepo,
		Activities:  campaignRepo,
		Leads:       leadSource{leads: leadRepo},
		Tasks:       dispatcher,
		Rand:        campaignpostgres.SystemRand{},
		Clock:       cClock,
		IDGenerator: cIDGen,
		Logger:      logger,
	})

	dispatcher.Register(leadworkers.TaskDiscoverLeads, leadModule.DiscoveryJob.Handle)
	dispatcher.Register(leadworkers.TaskImportLeads, leadModule.ImportJob.Handle)
	dispatcher.Register(leadcommands.TaskScoreLead, leadModule.ScoreJob.Handle)
	dispatcher.Register(campaignworkers.TaskRunCampaign, campaignModule.RunJob.Handle)

	return &WorkerApp{
		Leads:      leadModule,
		Campaigns:  campaignModule,
		postgres:   pg,
		dispatcher: dispatcher,
		workers:    cfg.Workers,
		logger:     logger,
	}, nil
}

// campaignDeps is the adapter surface the postgres and memory campaign
// stores share; the lead module's EngagementSource rides on the same value.
type campaignDeps interface {
	campaignports.CampaignRepository
	campaignports.MessageRepository
	campaignports.ActivityRepository
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"task_workers", w.workers,
	)
	return w.dispatcher.Run(ctx, w.workers)
}

// Enqueue exposes the task queue to process entrypoints.
func (w *WorkerApp) Enqueue(ctx context.Context, task string, args map[string]any) error {
	return w.dispatcher.Enqueue(ctx, task, args)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}
