package linkedin

import (
	"context"

	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/synthetic"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type Config struct {
	APIKey string
}

// Client covers the Sales Navigator slot in the vendor order. There is
// no live integration; it serves deterministic sample candidates so the
// rest of the pipeline behaves identically with or without a credential.
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Name() string { return "linkedin" }

func (c *Client) Ready() bool { return true }

func (c *Client) SearchPeople(_ context.Context, filters ports.SearchFilters) ([]entities.Candidate, error) {
	return synthetic.Candidates("linkedin", filters, []synthetic.Profile{
		{FirstName: "Lina", LastName: "Navarro", Company: "Navigator Co", JobTitle: "Growth Lead"},
		{FirstName: "Ivan", LastName: "Ghosh", Company: "Growth Labs", JobTitle: "Engineering Manager"},
	}), nil
}
