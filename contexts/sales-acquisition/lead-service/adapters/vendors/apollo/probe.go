package apollo

import (
	"context"
	"net/http"
	"strings"

	"prospector/contexts/sales-acquisition/lead-service/ports"
)

func probeFilters() ports.SearchFilters {
	return ports.SearchFilters{Keywords: "saas", Role: "CTO", Location: "United States", Limit: 1}
}

// ProbeResult classifies a lightweight connectivity check.
type ProbeResult struct {
	OK     bool
	Status int
	Hint   string
}

// Probe issues a single one-result search to verify credentials and
// reachability without pulling real data volume.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	if !c.cfg.Enabled || strings.TrimSpace(c.cfg.APIKey) == "" {
		return ProbeResult{OK: false, Status: 0, Hint: "disabled"}
	}

	payload := c.payload(probeFilters(), 1, 1)
	status, _, err := c.post(ctx, searchPath, payload)
	if err != nil {
		return ProbeResult{OK: false, Status: 0, Hint: "network_error"}
	}
	if status >= 200 && status < 300 {
		return ProbeResult{OK: true, Status: status, Hint: "ok"}
	}

	hint := "error"
	switch status {
	case http.StatusUnauthorized:
		hint = "unauthorized"
	case http.StatusForbidden:
		hint = "forbidden"
	case http.StatusUnprocessableEntity:
		hint = "invalid_payload"
	case http.StatusTooManyRequests:
		hint = "rate_limited"
	}
	return ProbeResult{OK: false, Status: status, Hint: hint}
}
