package salesforce

import (
	"context"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

type Config struct {
	ClientID string
}

// Client holds the Salesforce slot in the vendor order. It is ready only
// when a client id is configured and currently contributes nothing until
// the SOQL query path lands.
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Name() string { return "salesforce" }

func (c *Client) Ready() bool {
	return strings.TrimSpace(c.cfg.ClientID) != ""
}

func (c *Client) SearchPeople(_ context.Context, _ ports.SearchFilters) ([]entities.Candidate, error) {
	if !c.Ready() {
		return nil, nil
	}
	return nil, nil
}
