package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
)

type TaskRecord struct {
	Name string
	Args map[string]any
}

// Store is an in-memory adapter backing every campaign-service port plus the
// task queue, used by tests and by DSN-less runs.
type Store struct {
	mu sync.RWMutex

	campaigns  map[string]entities.Campaign
	messages   map[string]entities.OutboundMessage
	activities map[string]entities.Activity

	messageByStep  map[string]string
	activityByStep map[string]string

	tasks []TaskRecord
}

func NewStore(seed []entities.Campaign) *Store {
	store := &Store{
		campaigns:      make(map[string]entities.Campaign),
		messages:       make(map[string]entities.OutboundMessage),
		activities:     make(map[string]entities.Activity),
		messageByStep:  make(map[string]string),
		activityByStep: make(map[string]string),
	}
	for _, campaign := range seed {
		store.campaigns[campaign.CampaignID] = campaign
	}
	return store
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, accountID, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists || campaign.AccountID != strings.TrimSpace(accountID) {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListCampaigns(_ context.Context, accountID string) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Campaign
	for _, campaign := range s.campaigns {
		if campaign.AccountID == strings.TrimSpace(accountID) {
			items = append(items, campaign)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CampaignID < items[j].CampaignID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateMessage(_ context.Context, message entities.OutboundMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.messages[message.MessageID]; exists {
		return domainerrors.ErrInvalidMessageStatus
	}
	s.messages[message.MessageID] = message
	s.messageByStep[stepKey(message.AccountID, message.CampaignID, message.LeadID, message.Metadata.StepIndex)] = message.MessageID
	return nil
}

func (s *Store) UpdateMessage(_ context.Context, message entities.OutboundMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.messages[message.MessageID]; !exists {
		return domainerrors.ErrMessageNotFound
	}
	s.messages[message.MessageID] = message
	return nil
}

func (s *Store) GetMessage(_ context.Context, accountID, messageID string) (entities.OutboundMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	message, exists := s.messages[strings.TrimSpace(messageID)]
	if !exists || message.AccountID != strings.TrimSpace(accountID) {
		return entities.OutboundMessage{}, domainerrors.ErrMessageNotFound
	}
	return message, nil
}

func (s *Store) FindStepMessage(_ context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.OutboundMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messageID, exists := s.messageByStep[stepKey(accountID, campaignID, leadID, stepIndex)]
	if !exists {
		return entities.OutboundMessage{}, domainerrors.ErrMessageNotFound
	}
	return s.messages[messageID], nil
}

func (s *Store) CountMessagesByStatus(_ context.Context, accountID, leadID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, message := range s.messages {
		if message.AccountID == accountID && message.LeadID == leadID {
			counts[string(message.Status)]++
		}
	}
	return counts, nil
}

func (s *Store) CreateActivity(_ context.Context, activity entities.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[activity.ActivityID] = activity
	if activity.CampaignID != "" {
		s.activityByStep[stepKey(activity.AccountID, activity.CampaignID, activity.LeadID, activity.Metadata.StepIndex)] = activity.ActivityID
	}
	return nil
}

func (s *Store) FindStepActivity(_ context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.Activity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activityID, exists := s.activityByStep[stepKey(accountID, campaignID, leadID, stepIndex)]
	if !exists {
		return entities.Activity{}, false, nil
	}
	return s.activities[activityID], true, nil
}

func (s *Store) CountActivities(_ context.Context, accountID, leadID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, activity := range s.activities {
		if activity.AccountID == accountID && activity.LeadID == leadID {
			count++
		}
	}
	return count, nil
}

func (s *Store) Enqueue(_ context.Context, task string, args map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, TaskRecord{Name: task, Args: args})
	return nil
}

// Tasks returns the recorded enqueue calls, oldest first.
func (s *Store) Tasks() []TaskRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TaskRecord(nil), s.tasks...)
}

// Messages returns every stored message, ordered by scheduled time.
func (s *Store) Messages() []entities.OutboundMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.OutboundMessage, 0, len(s.messages))
	for _, message := range s.messages {
		items = append(items, message)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].MessageID < items[j].MessageID
		}
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
	return items
}

// Activities returns every stored activity, ordered by scheduled time.
func (s *Store) Activities() []entities.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Activity, 0, len(s.activities))
	for _, activity := range s.activities {
		items = append(items, activity)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Metadata.ScheduledAt.Equal(items[j].Metadata.ScheduledAt) {
			return items[i].ActivityID < items[j].ActivityID
		}
		return items[i].Metadata.ScheduledAt.Before(items[j].Metadata.ScheduledAt)
	})
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func stepKey(accountID, campaignID, leadID string, stepIndex int) string {
	return strings.TrimSpace(accountID) + "|" + strings.TrimSpace(campaignID) + "|" +
		strings.TrimSpace(leadID) + "|" + strconv.Itoa(stepIndex)
}
