package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/campaign-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidCampaignInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaign.CampaignID)).
		Updates(campaignUpdatesFromModel(row))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, accountID, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND campaign_id = ?", strings.TrimSpace(accountID), strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListCampaigns(ctx context.Context, accountID string) ([]entities.Campaign, error) {
	var rows []campaignModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CreateMessage(ctx context.Context, message entities.OutboundMessage) error {
	row := messageModelFromEntity(message)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidMessageStatus
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateMessage(ctx context.Context, message entities.OutboundMessage) error {
	row := messageModelFromEntity(message)
	result := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("message_id = ?", strings.TrimSpace(message.MessageID)).
		Updates(messageUpdatesFromModel(row))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMessageNotFound
	}
	return nil
}

func (r *Repository) GetMessage(ctx context.Context, accountID, messageID string) (entities.OutboundMessage, error) {
	var row messageModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND message_id = ?", strings.TrimSpace(accountID), strings.TrimSpace(messageID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OutboundMessage{}, domainerrors.ErrMessageNotFound
		}
		return entities.OutboundMessage{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindStepMessage(ctx context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.OutboundMessage, error) {
	var row messageModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND campaign_id = ? AND lead_id = ? AND step_index = ?",
			strings.TrimSpace(accountID), strings.TrimSpace(campaignID), strings.TrimSpace(leadID), stepIndex).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OutboundMessage{}, domainerrors.ErrMessageNotFound
		}
		return entities.OutboundMessage{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CountMessagesByStatus(ctx context.Context, accountID, leadID string) (map[string]int, error) {
	type statusCount struct {
		Status string
		Total  int
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Select("status, COUNT(*) AS total").
		Where("account_id = ? AND lead_id = ?", strings.TrimSpace(accountID), strings.TrimSpace(leadID)).
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *Repository) CreateActivity(ctx context.Context, activity entities.Activity) error {
	row := activityModelFromEntity(activity)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) FindStepActivity(ctx context.Context, accountID, campaignID, leadID string, stepIndex int) (entities.Activity, bool, error) {
	var row activityModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND campaign_id = ? AND lead_id = ? AND step_index = ?",
			strings.TrimSpace(accountID), strings.TrimSpace(campaignID), strings.TrimSpace(leadID), stepIndex).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Activity{}, false, nil
		}
		return entities.Activity{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CountActivities(ctx context.Context, accountID, leadID string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&activityModel{}).
		Where("account_id = ? AND lead_id = ?", strings.TrimSpace(accountID), strings.TrimSpace(leadID)).
		Count(&total).
		Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

type campaignModel struct {
	CampaignID string     `gorm:"column:campaign_id;primaryKey"`
	AccountID  string     `gorm:"column:account_id"`
	Name       string     `gorm:"column:name"`
	Status     string     `gorm:"column:status"`
	Audience   []byte     `gorm:"column:audience;type:jsonb"`
	Sequence   []byte     `gorm:"column:sequence;type:jsonb"`
	Metrics    []byte     `gorm:"column:metrics;type:jsonb"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
	StartedAt  *time.Time `gorm:"column:started_at"`
	EndedAt    *time.Time `gorm:"column:ended_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) (campaignModel, error) {
	audience, err := json.Marshal(item.Audience)
	if err != nil {
		return campaignModel{}, err
	}
	sequence, err := json.Marshal(item.Sequence)
	if err != nil {
		return campaignModel{}, err
	}
	metrics, err := json.Marshal(item.Metrics)
	if err != nil {
		return campaignModel{}, err
	}
	return campaignModel{
		CampaignID: strings.TrimSpace(item.CampaignID),
		AccountID:  strings.TrimSpace(item.AccountID),
		Name:       strings.TrimSpace(item.Name),
		Status:     string(item.Status),
		Audience:   audience,
		Sequence:   sequence,
		Metrics:    metrics,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
		StartedAt:  item.StartedAt,
		EndedAt:    item.EndedAt,
	}, nil
}

func campaignUpdatesFromModel(row campaignModel) map[string]any {
	return map[string]any{
		"account_id": row.AccountID,
		"name":       row.Name,
		"status":     row.Status,
		"audience":   row.Audience,
		"sequence":   row.Sequence,
		"metrics":    row.Metrics,
		"updated_at": row.UpdatedAt,
		"started_at": row.StartedAt,
		"ended_at":   row.EndedAt,
	}
}

func (m campaignModel) toEntity() (entities.Campaign, error) {
	var audience entities.AudienceFilter
	if len(m.Audience) > 0 {
		if err := json.Unmarshal(m.Audience, &audience); err != nil {
			return entities.Campaign{}, err
		}
	}
	var sequence []entities.Step
	if len(m.Sequence) > 0 {
		if err := json.Unmarshal(m.Sequence, &sequence); err != nil {
			return entities.Campaign{}, err
		}
	}
	var metrics entities.Metrics
	if len(m.Metrics) > 0 {
		if err := json.Unmarshal(m.Metrics, &metrics); err != nil {
			return entities.Campaign{}, err
		}
	}
	return entities.Campaign{
		CampaignID: m.CampaignID,
		AccountID:  m.AccountID,
		Name:       m.Name,
		Status:     entities.CampaignStatus(m.Status),
		Audience:   audience,
		Sequence:   sequence,
		Metrics:    metrics,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		StartedAt:  m.StartedAt,
		EndedAt:    m.EndedAt,
	}, nil
}

type messageModel struct {
	MessageID   string     `gorm:"column:message_id;primaryKey"`
	AccountID   string     `gorm:"column:account_id"`
	CampaignID  string     `gorm:"column:campaign_id"`
	LeadID      string     `gorm:"column:lead_id"`
	Direction   string     `gorm:"column:direction"`
	Status      string     `gorm:"column:status"`
	Subject     string     `gorm:"column:subject"`
	BodyText    string     `gorm:"column:body_text"`
	ScheduledAt time.Time  `gorm:"column:scheduled_at"`
	SentAt      *time.Time `gorm:"column:sent_at"`
	StepIndex   int        `gorm:"column:step_index"`
	Variant     string     `gorm:"column:variant"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (messageModel) TableName() string {
	return "outbound_messages"
}

func messageModelFromEntity(item entities.OutboundMessage) messageModel {
	return messageModel{
		MessageID:   strings.TrimSpace(item.MessageID),
		AccountID:   strings.TrimSpace(item.AccountID),
		CampaignID:  strings.TrimSpace(item.CampaignID),
		LeadID:      strings.TrimSpace(item.LeadID),
		Direction:   string(item.Direction),
		Status:      string(item.Status),
		Subject:     item.Subject,
		BodyText:    item.BodyText,
		ScheduledAt: item.ScheduledAt.UTC(),
		SentAt:      item.SentAt,
		StepIndex:   item.Metadata.StepIndex,
		Variant:     item.Metadata.Variant,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func messageUpdatesFromModel(row messageModel) map[string]any {
	return map[string]any{
		"account_id":   row.AccountID,
		"campaign_id":  row.CampaignID,
		"lead_id":      row.LeadID,
		"direction":    row.Direction,
		"status":       row.Status,
		"subject":      row.Subject,
		"body_text":    row.BodyText,
		"scheduled_at": row.ScheduledAt,
		"sent_at":      row.SentAt,
		"step_index":   row.StepIndex,
		"variant":      row.Variant,
		"updated_at":   row.UpdatedAt,
	}
}

func (m messageModel) toEntity() entities.OutboundMessage {
	return entities.OutboundMessage{
		MessageID:   m.MessageID,
		AccountID:   m.AccountID,
		CampaignID:  m.CampaignID,
		LeadID:      m.LeadID,
		Direction:   entities.MessageDirection(m.Direction),
		Status:      entities.MessageStatus(m.Status),
		Subject:     m.Subject,
		BodyText:    m.BodyText,
		ScheduledAt: m.ScheduledAt,
		SentAt:      m.SentAt,
		Metadata:    entities.MessageMetadata{StepIndex: m.StepIndex, Variant: m.Variant},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type activityModel struct {
	ActivityID  string    `gorm:"column:activity_id;primaryKey"`
	AccountID   string    `gorm:"column:account_id"`
	LeadID      string    `gorm:"column:lead_id"`
	CampaignID  string    `gorm:"column:campaign_id"`
	Kind        string    `gorm:"column:kind"`
	Content     string    `gorm:"column:content"`
	HappenedAt  time.Time `gorm:"column:happened_at"`
	Channel     string    `gorm:"column:channel"`
	ScheduledAt time.Time `gorm:"column:scheduled_at"`
	StepIndex   int       `gorm:"column:step_index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (activityModel) TableName() string {
	return "activities"
}

func activityModelFromEntity(item entities.Activity) activityModel {
	return activityModel{
		ActivityID:  strings.TrimSpace(item.ActivityID),
		AccountID:   strings.TrimSpace(item.AccountID),
		LeadID:      strings.TrimSpace(item.LeadID),
		CampaignID:  strings.TrimSpace(item.CampaignID),
		Kind:        item.Kind,
		Content:     item.Content,
		HappenedAt:  item.HappenedAt.UTC(),
		Channel:     string(item.Metadata.Channel),
		ScheduledAt: item.Metadata.ScheduledAt.UTC(),
		StepIndex:   item.Metadata.StepIndex,
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

func (m activityModel) toEntity() entities.Activity {
	return entities.Activity{
		ActivityID: m.ActivityID,
		AccountID:  m.AccountID,
		LeadID:     m.LeadID,
		CampaignID: m.CampaignID,
		Kind:       m.Kind,
		Content:    m.Content,
		HappenedAt: m.HappenedAt,
		Metadata: entities.ActivityMetadata{
			Channel:     entities.Channel(m.Channel),
			ScheduledAt: m.ScheduledAt,
			StepIndex:   m.StepIndex,
		},
		CreatedAt: m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
