package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
)

// TaskRecord captures an enqueued task for assertions in tests.
type TaskRecord struct {
	Name string
	Args map[string]any
}

// Store is the in-memory lead repository. It doubles as Clock,
// IDGenerator, TaskQueue and EngagementSource so a lead module can run
// fully self-contained in tests.
type Store struct {
	mu sync.RWMutex

	leads      map[string]entities.Lead
	byEmail    map[string]string
	byExternal map[string]string

	engagement map[string]engagement
	tasks      []TaskRecord
}

type engagement struct {
	messagesByStatus map[string]int
	activities       int
}

func NewStore(seed []entities.Lead) *Store {
	s := &Store{
		leads:      make(map[string]entities.Lead, len(seed)),
		byEmail:    make(map[string]string),
		byExternal: make(map[string]string),
		engagement: make(map[string]engagement),
	}
	for _, lead := range seed {
		s.leads[lead.LeadID] = lead
		s.index(lead)
	}
	return s
}

func (s *Store) CreateLead(_ context.Context, lead entities.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leads[lead.LeadID]; exists {
		return domainerrors.ErrDuplicateLead
	}
	if email := entities.NormalizeEmail(lead.Email); email != "" {
		if _, exists := s.byEmail[emailKey(lead.AccountID, email)]; exists {
			return domainerrors.ErrDuplicateLead
		}
	} else if key := lead.IdentityKey(); key != "" {
		if _, exists := s.byExternal[externalKey(lead.AccountID, lead.Source, lead.ExternalID)]; exists {
			return domainerrors.ErrDuplicateLead
		}
	}
	s.leads[lead.LeadID] = lead
	s.index(lead)
	return nil
}

func (s *Store) UpdateLead(_ context.Context, lead entities.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, exists := s.leads[lead.LeadID]
	if !exists {
		return domainerrors.ErrLeadNotFound
	}
	s.unindex(previous)
	s.leads[lead.LeadID] = lead
	s.index(lead)
	return nil
}

func (s *Store) GetLead(_ context.Context, accountID, leadID string) (entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, exists := s.leads[strings.TrimSpace(leadID)]
	if !exists || lead.AccountID != strings.TrimSpace(accountID) {
		return entities.Lead{}, domainerrors.ErrLeadNotFound
	}
	return lead, nil
}

func (s *Store) FindLeadByEmail(_ context.Context, accountID, email string) (entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leadID, exists := s.byEmail[emailKey(accountID, entities.NormalizeEmail(email))]
	if !exists {
		return entities.Lead{}, domainerrors.ErrLeadNotFound
	}
	return s.leads[leadID], nil
}

func (s *Store) FindLeadByExternalID(_ context.Context, accountID, source, externalID string) (entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leadID, exists := s.byExternal[externalKey(accountID, source, externalID)]
	if !exists {
		return entities.Lead{}, domainerrors.ErrLeadNotFound
	}
	return s.leads[leadID], nil
}

func (s *Store) SearchLeads(_ context.Context, accountID string, filters ports.SearchFilters) ([]entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keywords := strings.ToLower(strings.TrimSpace(filters.Keywords))
	role := strings.ToLower(strings.TrimSpace(filters.Role))
	location := strings.ToLower(strings.TrimSpace(filters.Location))
	if keywords == "" && role == "" && location == "" {
		return nil, nil
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 10
	}

	var items []entities.Lead
	for _, lead := range s.leads {
		if lead.AccountID != strings.TrimSpace(accountID) {
			continue
		}
		if keywords != "" && !containsAny(keywords, lead.Email, lead.Company, lead.FirstName, lead.LastName) {
			continue
		}
		if role != "" && !strings.Contains(strings.ToLower(lead.JobTitle), role) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(lead.Location), location) {
			continue
		}
		items = append(items, lead)
	}
	sortLeads(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ListLeadsByAudience(_ context.Context, accountID string, query ports.AudienceQuery) ([]entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []entities.Lead
	for _, lead := range s.leads {
		if lead.AccountID != strings.TrimSpace(accountID) {
			continue
		}
		if !matchesAudience(lead, query) {
			continue
		}
		items = append(items, lead)
	}
	sortLeads(items)
	return items, nil
}

func matchesAudience(lead entities.Lead, query ports.AudienceQuery) bool {
	if len(query.Statuses) > 0 && !stringIn(string(lead.Status), query.Statuses) {
		return false
	}
	if len(query.Industries) > 0 && !stringIn(strings.ToLower(lead.Enrichment["industry"]), lowered(query.Industries)) {
		return false
	}
	if len(query.Roles) > 0 && !anySubstring(strings.ToLower(lead.JobTitle), lowered(query.Roles)) {
		return false
	}
	if len(query.Locations) > 0 && !anySubstring(strings.ToLower(lead.Location), lowered(query.Locations)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(query.FreeText)); q != "" {
		if !containsAny(q, lead.Email, lead.Company, lead.FirstName, lead.LastName) {
			return false
		}
	}
	return true
}

// Engagement fixtures for scoring tests.

func (s *Store) SetEngagement(leadID string, messagesByStatus map[string]int, activities int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engagement[leadID] = engagement{messagesByStatus: messagesByStatus, activities: activities}
}

func (s *Store) CountMessagesByStatus(_ context.Context, _, leadID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(s.engagement[leadID].messagesByStatus))
	for status, n := range s.engagement[leadID].messagesByStatus {
		counts[status] = n
	}
	return counts, nil
}

func (s *Store) CountActivities(_ context.Context, _, leadID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engagement[leadID].activities, nil
}

// TaskQueue implementation: tasks are recorded, not executed.

func (s *Store) Enqueue(_ context.Context, task string, args map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, TaskRecord{Name: task, Args: args})
	return nil
}

func (s *Store) Tasks() []TaskRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TaskRecord(nil), s.tasks...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) index(lead entities.Lead) {
	if email := entities.NormalizeEmail(lead.Email); email != "" {
		s.byEmail[emailKey(lead.AccountID, email)] = lead.LeadID
	}
	if strings.TrimSpace(lead.Source) != "" && strings.TrimSpace(lead.ExternalID) != "" {
		s.byExternal[externalKey(lead.AccountID, lead.Source, lead.ExternalID)] = lead.LeadID
	}
}

func (s *Store) unindex(lead entities.Lead) {
	if email := entities.NormalizeEmail(lead.Email); email != "" {
		delete(s.byEmail, emailKey(lead.AccountID, email))
	}
	if strings.TrimSpace(lead.Source) != "" && strings.TrimSpace(lead.ExternalID) != "" {
		delete(s.byExternal, externalKey(lead.AccountID, lead.Source, lead.ExternalID))
	}
}

func emailKey(accountID, email string) string {
	return strings.TrimSpace(accountID) + "|" + email
}

func externalKey(accountID, source, externalID string) string {
	return strings.TrimSpace(accountID) + "|" + strings.TrimSpace(source) + ":" + strings.TrimSpace(externalID)
}

func sortLeads(items []entities.Lead) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].LeadID < items[j].LeadID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func containsAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func anySubstring(haystack string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func stringIn(value string, values []string) bool {
	for _, item := range values {
		if value == item {
			return true
		}
	}
	return false
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(strings.TrimSpace(value))
	}
	return out
}
