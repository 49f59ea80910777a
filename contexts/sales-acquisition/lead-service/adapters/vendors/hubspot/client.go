package hubspot

import (
	"context"

	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/synthetic"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type Config struct {
	APIKey string
}

// Client is the HubSpot contacts slot in the vendor order, serving
// deterministic sample candidates until the Contacts API integration is
// wired up.
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Name() string { return "hubspot" }

func (c *Client) Ready() bool { return true }

func (c *Client) SearchPeople(_ context.Context, filters ports.SearchFilters) ([]entities.Candidate, error) {
	return synthetic.Candidates("hubspot", filters, []synthetic.Profile{
		{FirstName: "Hugh", LastName: "Spot", Company: "Hub Factory", JobTitle: "Sales Director"},
	}), nil
}
