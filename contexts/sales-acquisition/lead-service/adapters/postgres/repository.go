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

	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
	"prospector/contexts/sales-acquisition/lead-service/ports"
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

func (r *Repository) CreateLead(ctx context.Context, lead entities.Lead) error {
	row, err := leadModelFromEntity(lead)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateLead
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateLead(ctx context.Context, lead entities.Lead) error {
	row, err := leadModelFromEntity(lead)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("lead_id = ?", strings.TrimSpace(lead.LeadID)).
		Updates(leadUpdatesFromModel(row))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrLeadNotFound
	}
	return nil
}

func (r *Repository) GetLead(ctx context.Context, accountID, leadID string) (entities.Lead, error) {
	var row leadModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND lead_id = ?", strings.TrimSpace(accountID), strings.TrimSpace(leadID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Lead{}, domainerrors.ErrLeadNotFound
		}
		return entities.Lead{}, err
	}
	return row.toEntity()
}

func (r *Repository) FindLeadByEmail(ctx context.Context, accountID, email string) (entities.Lead, error) {
	var row leadModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND LOWER(email) = ?", strings.TrimSpace(accountID), entities.NormalizeEmail(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Lead{}, domainerrors.ErrLeadNotFound
		}
		return entities.Lead{}, err
	}
	return row.toEntity()
}

func (r *Repository) FindLeadByExternalID(ctx context.Context, accountID, source, externalID string) (entities.Lead, error) {
	var row leadModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND source = ? AND external_id = ?",
			strings.TrimSpace(accountID), strings.TrimSpace(source), strings.TrimSpace(externalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Lead{}, domainerrors.ErrLeadNotFound
		}
		return entities.Lead{}, err
	}
	return row.toEntity()
}

func (r *Repository) SearchLeads(ctx context.Context, accountID string, filters ports.SearchFilters) ([]entities.Lead, error) {
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

	tx := r.db.WithContext(ctx).Model(&leadModel{}).Where("account_id = ?", strings.TrimSpace(accountID))
	if keywords != "" {
		pattern := "%" + keywords + "%"
		tx = tx.Where(
			"LOWER(email) LIKE ? OR LOWER(company) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if role != "" {
		tx = tx.Where("LOWER(job_title) LIKE ?", "%"+role+"%")
	}
	if location != "" {
		tx = tx.Where("LOWER(location) LIKE ?", "%"+location+"%")
	}

	var rows []leadModel
	if err := tx.Order("created_at ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return leadsFromModels(rows)
}

func (r *Repository) ListLeadsByAudience(ctx context.Context, accountID string, query ports.AudienceQuery) ([]entities.Lead, error) {
	tx := r.db.WithContext(ctx).Model(&leadModel{}).Where("account_id = ?", strings.TrimSpace(accountID))

	if len(query.Statuses) > 0 {
		tx = tx.Where("status IN ?", query.Statuses)
	}
	if len(query.Industries) > 0 {
		tx = tx.Where("LOWER(enrichment->>'industry') IN ?", loweredValues(query.Industries))
	}
	if len(query.Roles) > 0 {
		tx = tx.Where("LOWER(job_title) LIKE ANY (ARRAY[?])", likePatterns(query.Roles))
	}
	if len(query.Locations) > 0 {
		tx = tx.Where("LOWER(location) LIKE ANY (ARRAY[?])", likePatterns(query.Locations))
	}
	if q := strings.ToLower(strings.TrimSpace(query.FreeText)); q != "" {
		pattern := "%" + q + "%"
		tx = tx.Where(
			"LOWER(email) LIKE ? OR LOWER(company) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var rows []leadModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return leadsFromModels(rows)
}

type leadModel struct {
	LeadID          string     `gorm:"column:lead_id;primaryKey"`
	AccountID       string     `gorm:"column:account_id"`
	FirstName       string     `gorm:"column:first_name"`
	LastName        string     `gorm:"column:last_name"`
	Email           string     `gorm:"column:email"`
	Phone           string     `gorm:"column:phone"`
	Company         string     `gorm:"column:company"`
	JobTitle        string     `gorm:"column:job_title"`
	Location        string     `gorm:"column:location"`
	LinkedinURL     string     `gorm:"column:linkedin_url"`
	Website         string     `gorm:"column:website"`
	Status          string     `gorm:"column:status"`
	Source          string     `gorm:"column:source"`
	ExternalID      string     `gorm:"column:external_id"`
	Score           int        `gorm:"column:score"`
	Tags            []string   `gorm:"column:tags;type:text[]"`
	Enrichment      []byte     `gorm:"column:enrichment;type:jsonb"`
	Attribution     []byte     `gorm:"column:attribution;type:jsonb"`
	DoNotContact    bool       `gorm:"column:do_not_contact"`
	Locked          bool       `gorm:"column:locked"`
	LastContactedAt *time.Time `gorm:"column:last_contacted_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (leadModel) TableName() string {
	return "leads"
}

type attributionDoc struct {
	Vendor    string     `json:"vendor"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
}

func leadModelFromEntity(item entities.Lead) (leadModel, error) {
	enrichment, err := marshalMap(item.Enrichment)
	if err != nil {
		return leadModel{}, err
	}
	doc := attributionDoc{Vendor: item.Attribution.Vendor}
	if !item.Attribution.FetchedAt.IsZero() {
		at := item.Attribution.FetchedAt.UTC()
		doc.FetchedAt = &at
	}
	attribution, err := json.Marshal(doc)
	if err != nil {
		return leadModel{}, err
	}

	return leadModel{
		LeadID:          strings.TrimSpace(item.LeadID),
		AccountID:       strings.TrimSpace(item.AccountID),
		FirstName:       strings.TrimSpace(item.FirstName),
		LastName:        strings.TrimSpace(item.LastName),
		Email:           entities.NormalizeEmail(item.Email),
		Phone:           strings.TrimSpace(item.Phone),
		Company:         strings.TrimSpace(item.Company),
		JobTitle:        strings.TrimSpace(item.JobTitle),
		Location:        strings.TrimSpace(item.Location),
		LinkedinURL:     strings.TrimSpace(item.LinkedinURL),
		Website:         strings.TrimSpace(item.Website),
		Status:          string(item.Status),
		Source:          strings.TrimSpace(item.Source),
		ExternalID:      strings.TrimSpace(item.ExternalID),
		Score:           item.Score,
		Tags:            append([]string(nil), item.Tags...),
		Enrichment:      enrichment,
		Attribution:     attribution,
		DoNotContact:    item.DoNotContact,
		Locked:          item.Locked,
		LastContactedAt: normalizeOptionalTime(item.LastContactedAt),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func leadUpdatesFromModel(row leadModel) map[string]any {
	return map[string]any{
		"account_id":        row.AccountID,
		"first_name":        row.FirstName,
		"last_name":         row.LastName,
		"email":             row.Email,
		"phone":             row.Phone,
		"company":           row.Company,
		"job_title":         row.JobTitle,
		"location":          row.Location,
		"linkedin_url":      row.LinkedinURL,
		"website":           row.Website,
		"status":            row.Status,
		"source":            row.Source,
		"external_id":       row.ExternalID,
		"score":             row.Score,
		"tags":              row.Tags,
		"enrichment":        row.Enrichment,
		"attribution":       row.Attribution,
		"do_not_contact":    row.DoNotContact,
		"locked":            row.Locked,
		"last_contacted_at": row.LastContactedAt,
		"updated_at":        row.UpdatedAt,
	}
}

func (m leadModel) toEntity() (entities.Lead, error) {
	enrichment, err := unmarshalMap(m.Enrichment)
	if err != nil {
		return entities.Lead{}, err
	}
	var doc attributionDoc
	if len(m.Attribution) > 0 {
		if err := json.Unmarshal(m.Attribution, &doc); err != nil {
			return entities.Lead{}, err
		}
	}
	attribution := entities.Attribution{Vendor: doc.Vendor}
	if doc.FetchedAt != nil {
		attribution.FetchedAt = doc.FetchedAt.UTC()
	}

	return entities.Lead{
		LeadID:          m.LeadID,
		AccountID:       m.AccountID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		Company:         m.Company,
		JobTitle:        m.JobTitle,
		Location:        m.Location,
		LinkedinURL:     m.LinkedinURL,
		Website:         m.Website,
		Status:          entities.LeadStatus(m.Status),
		Source:          m.Source,
		ExternalID:      m.ExternalID,
		Score:           m.Score,
		Tags:            append([]string(nil), m.Tags...),
		Enrichment:      enrichment,
		Attribution:     attribution,
		DoNotContact:    m.DoNotContact,
		Locked:          m.Locked,
		LastContactedAt: m.LastContactedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func leadsFromModels(rows []leadModel) ([]entities.Lead, error) {
	items := make([]entities.Lead, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func marshalMap(values map[string]string) ([]byte, error) {
	if len(values) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(values)
}

func unmarshalMap(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}

func loweredValues(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(strings.TrimSpace(value))
	}
	return out
}

func likePatterns(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = "%" + strings.ToLower(strings.TrimSpace(value)) + "%"
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
