package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fieldops/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

type quoteModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	LeadID              string    `gorm:"column:lead_id"`
	CompanyID           string    `gorm:"column:company_id"`
	PrimaryPest         *string   `gorm:"column:primary_pest"`
	AdditionalPests     PestList  `gorm:"column:additional_pests;type:jsonb"`
	HomeSizeRange       *string   `gorm:"column:home_size_range"`
	YardSizeRange       *string   `gorm:"column:yard_size_range"`
	TotalInitialPrice   float64   `gorm:"column:total_initial_price"`
	TotalRecurringPrice float64   `gorm:"column:total_recurring_price"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (quoteModel) TableName() string { return "quotes" }

type lineItemModel struct {
	ID                   string    `gorm:"column:id;primaryKey"`
	QuoteID              string    `gorm:"column:quote_id"`
	Kind                 string    `gorm:"column:kind"`
	DisplayOrder         int       `gorm:"column:display_order"`
	ServicePlanID        *string   `gorm:"column:service_plan_id"`
	PlanName             *string   `gorm:"column:plan_name"`
	ServiceFrequency     *string   `gorm:"column:service_frequency"`
	DiscountID           *string   `gorm:"column:discount_id"`
	DiscountPercentage   float64   `gorm:"column:discount_percentage"`
	IsCustomPriced       bool      `gorm:"column:is_custom_priced"`
	CustomInitialPrice   *float64  `gorm:"column:custom_initial_price"`
	CustomRecurringPrice *float64  `gorm:"column:custom_recurring_price"`
	AddonServiceID       *string   `gorm:"column:addon_service_id"`
	AddonName            *string   `gorm:"column:addon_name"`
	InitialPrice         float64   `gorm:"column:initial_price"`
	RecurringPrice       float64   `gorm:"column:recurring_price"`
	FinalInitialPrice    float64   `gorm:"column:final_initial_price"`
	FinalRecurringPrice  float64   `gorm:"column:final_recurring_price"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (lineItemModel) TableName() string { return "quote_line_items" }

func toDomainQuote(m quoteModel, lines []lineItemModel) *domain.Quote {
	q := &domain.Quote{
		ID:                  m.ID,
		LeadID:              m.LeadID,
		CompanyID:           m.CompanyID,
		PrimaryPest:         m.PrimaryPest,
		AdditionalPests:     []string(m.AdditionalPests),
		HomeSizeRange:       m.HomeSizeRange,
		YardSizeRange:       m.YardSizeRange,
		TotalInitialPrice:   m.TotalInitialPrice,
		TotalRecurringPrice: m.TotalRecurringPrice,
	}
	if q.AdditionalPests == nil {
		q.AdditionalPests = []string{}
	}
	q.LineItems = make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		q.LineItems = append(q.LineItems, toDomainLineItem(l))
	}
	return q
}

func toDomainLineItem(m lineItemModel) domain.LineItem {
	li := domain.LineItem{
		ID:                   m.ID,
		QuoteID:              m.QuoteID,
		Kind:                 domain.LineItemKind(m.Kind),
		DisplayOrder:         m.DisplayOrder,
		DiscountID:           m.DiscountID,
		DiscountPercentage:   m.DiscountPercentage,
		IsCustomPriced:       m.IsCustomPriced,
		CustomInitialPrice:   m.CustomInitialPrice,
		CustomRecurringPrice: m.CustomRecurringPrice,
		InitialPrice:         m.InitialPrice,
		RecurringPrice:       m.RecurringPrice,
		FinalInitialPrice:    m.FinalInitialPrice,
		FinalRecurringPrice:  m.FinalRecurringPrice,
	}
	if m.ServicePlanID != nil {
		li.ServicePlanID = *m.ServicePlanID
	}
	if m.PlanName != nil {
		li.PlanName = *m.PlanName
	}
	if m.ServiceFrequency != nil {
		li.ServiceFrequency = *m.ServiceFrequency
	}
	if m.AddonServiceID != nil {
		li.AddonServiceID = *m.AddonServiceID
	}
	if m.AddonName != nil {
		li.AddonName = *m.AddonName
	}
	return li
}

func toLineItemModel(li *domain.LineItem) lineItemModel {
	m := lineItemModel{
		ID:                   li.ID,
		QuoteID:              li.QuoteID,
		Kind:                 string(li.Kind),
		DisplayOrder:         li.DisplayOrder,
		DiscountID:           li.DiscountID,
		DiscountPercentage:   li.DiscountPercentage,
		IsCustomPriced:       li.IsCustomPriced,
		CustomInitialPrice:   li.CustomInitialPrice,
		CustomRecurringPrice: li.CustomRecurringPrice,
		InitialPrice:         li.InitialPrice,
		RecurringPrice:       li.RecurringPrice,
		FinalInitialPrice:    li.FinalInitialPrice,
		FinalRecurringPrice:  li.FinalRecurringPrice,
	}
	m.ServicePlanID = optString(li.ServicePlanID)
	m.PlanName = optString(li.PlanName)
	m.ServiceFrequency = optString(li.ServiceFrequency)
	m.AddonServiceID = optString(li.AddonServiceID)
	m.AddonName = optString(li.AddonName)
	return m
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var m quoteModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var lines []lineItemModel
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", id).
		Order("display_order ASC, created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return toDomainQuote(m, lines), nil
}

func (r *QuoteRepository) GetByLeadID(ctx context.Context, leadID string) (*domain.Quote, error) {
	var m quoteModel
	if err := r.db.WithContext(ctx).First(&m, "lead_id = ?", leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	now := time.Now()
	m := quoteModel{
		ID:              q.ID,
		LeadID:          q.LeadID,
		CompanyID:       q.CompanyID,
		PrimaryPest:     q.PrimaryPest,
		AdditionalPests: PestList(q.AdditionalPests),
		HomeSizeRange:   q.HomeSizeRange,
		YardSizeRange:   q.YardSizeRange,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// UpdateFields applies a column map to the quote row.
func (r *QuoteRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *QuoteRepository) UpdateTotals(ctx context.Context, id string, initial, recurring float64) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{
		"total_initial_price":   initial,
		"total_recurring_price": recurring,
	})
}

func (r *QuoteRepository) GetLineItem(ctx context.Context, id string) (*domain.LineItem, error) {
	var m lineItemModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	li := toDomainLineItem(m)
	return &li, nil
}

func (r *QuoteRepository) InsertLineItem(ctx context.Context, li *domain.LineItem) error {
	m := toLineItemModel(li)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.db.WithContext(ctx).Create(&m).Error
}

// UpdateLineItem persists every mutable column, cleared ones included.
// A struct update would skip zero values, silently keeping a detached
// discount or a disabled custom price on the row.
func (r *QuoteRepository) UpdateLineItem(ctx context.Context, li *domain.LineItem) error {
	m := toLineItemModel(li)
	return r.db.WithContext(ctx).
		Model(&lineItemModel{}).
		Where("id = ?", li.ID).
		Updates(map[string]interface{}{
			"service_frequency":      m.ServiceFrequency,
			"discount_id":            m.DiscountID,
			"discount_percentage":    m.DiscountPercentage,
			"is_custom_priced":       m.IsCustomPriced,
			"custom_initial_price":   m.CustomInitialPrice,
			"custom_recurring_price": m.CustomRecurringPrice,
			"initial_price":          m.InitialPrice,
			"recurring_price":        m.RecurringPrice,
			"final_initial_price":    m.FinalInitialPrice,
			"final_recurring_price":  m.FinalRecurringPrice,
			"updated_at":             time.Now(),
		}).Error
}

func (r *QuoteRepository) DeleteLineItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&lineItemModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllLineItems clears a quote's line-item set (primary pest reset).
func (r *QuoteRepository) DeleteAllLineItems(ctx context.Context, quoteID string) error {
	return r.db.WithContext(ctx).Delete(&lineItemModel{}, "quote_id = ?", quoteID).Error
}
