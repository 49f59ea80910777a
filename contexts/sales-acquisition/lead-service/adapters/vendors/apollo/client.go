package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"prospector/contexts/sales-acquisition/lead-service/adapters/vendors/synthetic"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

const (
	defaultBaseURL     = "https://api.apollo.io/api/v1"
	defaultPerPage     = 25
	defaultResultLimit = 25
	defaultMaxRetries  = 2
	defaultRetryDelay  = 250 * time.Millisecond
	defaultTimeout     = 10 * time.Second
	maxPerPage         = 100
	maxPages           = 10

	searchPath = "/mixed_people/search"
)

var (
	errRateLimited  = errors.New("apollo rate limit budget exhausted")
	errUnauthorized = errors.New("apollo credential rejected")
)

// Config replaces the env-driven toggles of older revisions: everything
// the client needs is passed explicitly at construction.
type Config struct {
	Enabled           bool
	APIKey            string
	BaseURL           string
	PerPage           int
	ResultLimit       int
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client talks to the paginated Apollo people-search API. It retries
// rate-limited pages within a fixed budget, maps heterogeneous response
// shapes defensively, and degrades to a deterministic synthetic result
// set rather than failing the aggregation.
type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}
	if cfg.PerPage > maxPerPage {
		cfg.PerPage = maxPerPage
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = defaultResultLimit
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

func (c *Client) Name() string { return "apollo" }

func (c *Client) Ready() bool { return c.cfg.Enabled }

func (c *Client) SearchPeople(ctx context.Context, filters ports.SearchFilters) ([]entities.Candidate, error) {
	if !c.cfg.Enabled {
		return nil, nil
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = c.cfg.ResultLimit
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return c.fallback(filters, limit), nil
	}

	perPage := c.cfg.PerPage
	if perPage > limit {
		perPage = limit
	}

	var out []entities.Candidate
	page := 1
	for len(out) < limit && page <= maxPages {
		batch, hasMore, err := c.fetchPage(ctx, filters, page, perPage)
		if err != nil {
			c.logger.Warn("apollo pagination aborted",
				"event", "apollo_pagination_aborted",
				"module", "sales-acquisition/lead-service",
				"layer", "adapter",
				"page", page,
				"error", err.Error(),
			)
			break
		}
		out = append(out, batch...)
		if !hasMore {
			break
		}
		page++
	}

	if len(out) == 0 {
		return c.fallback(filters, limit), nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fetchPage issues one page request, retrying the same page on HTTP 429
// after a fixed delay until the retry budget is spent. Any other
// non-success aborts immediately.
func (c *Client) fetchPage(ctx context.Context, filters ports.SearchFilters, page, perPage int) ([]entities.Candidate, bool, error) {
	var attempts int
	for {
		status, body, err := c.post(ctx, searchPath, c.payload(filters, page, perPage))
		if err != nil {
			return nil, false, err
		}
		switch {
		case status >= 200 && status < 300:
			people := peopleList(body)
			return mapPeople(people), nextPageIndicated(body, len(people), perPage), nil
		case status == http.StatusTooManyRequests:
			attempts++
			if attempts > c.cfg.MaxRetries {
				return nil, false, errRateLimited
			}
			if err := sleepCtx(ctx, c.cfg.RetryDelay); err != nil {
				return nil, false, err
			}
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return nil, false, errUnauthorized
		default:
			return nil, false, fmt.Errorf("apollo search status %d", status)
		}
	}
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) (int, map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("x-api-key", c.cfg.APIKey)

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("apollo post: %w", err)
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		body = nil
	}
	return res.StatusCode, body, nil
}

func (c *Client) payload(filters ports.SearchFilters, page, perPage int) map[string]any {
	payload := map[string]any{
		"api_key":  c.cfg.APIKey,
		"page":     page,
		"per_page": perPage,
	}
	if v := strings.TrimSpace(filters.Keywords); v != "" {
		payload["q_keywords"] = v
	}
	if v := strings.TrimSpace(filters.Role); v != "" {
		payload["person_titles"] = []string{v}
	}
	if v := normalizeLocation(filters.Location); v != "" {
		payload["person_locations"] = []string{v}
	}
	return payload
}

func (c *Client) fallback(filters ports.SearchFilters, limit int) []entities.Candidate {
	out := synthetic.Candidates("apollo", filters, []synthetic.Profile{
		{FirstName: "Ada", LastName: "Polk", Company: "Northwind Analytics", JobTitle: "CTO"},
		{FirstName: "Omar", LastName: "Reyes", Company: "Cloudline Systems", JobTitle: "VP Engineering"},
		{FirstName: "Priya", LastName: "Malik", Company: "Signal Harbor", JobTitle: "Head of Engineering"},
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func normalizeLocation(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "us", "usa", "u.s.", "united states", "united-states":
		return "United States"
	case "uk", "u.k.", "united kingdom", "united-kingdom", "great britain", "gb":
		return "United Kingdom"
	default:
		return trimmed
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
