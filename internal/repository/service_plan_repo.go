package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldops/internal/domain"
)

type ServicePlanRepository struct {
	db *gorm.DB
}

func NewServicePlanRepository(db *gorm.DB) *ServicePlanRepository {
	return &ServicePlanRepository{db: db}
}

// sizePricingColumn stores a plan's per-dimension price table as jsonb.
type sizePricingColumn struct {
	pricing *domain.SizePricing
}

func (c sizePricingColumn) Value() (driver.Value, error) {
	if c.pricing == nil {
		return nil, nil
	}
	b, err := json.Marshal(c.pricing)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *sizePricingColumn) Scan(src interface{}) error {
	if src == nil {
		c.pricing = nil
		return nil
	}
	var p domain.SizePricing
	if err := scanJSON(src, &p); err != nil {
		return err
	}
	c.pricing = &p
	return nil
}

type servicePlanModel struct {
	ID                 string            `gorm:"column:id;primaryKey"`
	CompanyID          string            `gorm:"column:company_id"`
	PlanName           string            `gorm:"column:plan_name"`
	PlanCategory       string            `gorm:"column:plan_category"`
	PlanDescription    string            `gorm:"column:plan_description"`
	InitialPrice       float64           `gorm:"column:initial_price"`
	RecurringPrice     float64           `gorm:"column:recurring_price"`
	BillingFrequency   string            `gorm:"column:billing_frequency"`
	AllowCustomPricing bool              `gorm:"column:allow_custom_pricing"`
	PestCoverage       PestList          `gorm:"column:pest_coverage;type:jsonb"`
	HomeSizePricing    sizePricingColumn `gorm:"column:home_size_pricing;type:jsonb"`
	YardSizePricing    sizePricingColumn `gorm:"column:yard_size_pricing;type:jsonb"`
	IsActive           bool              `gorm:"column:is_active"`
	CreatedAt          time.Time         `gorm:"column:created_at"`
	UpdatedAt          time.Time         `gorm:"column:updated_at"`
}

func (servicePlanModel) TableName() string { return "service_plans" }

func toDomainPlan(m servicePlanModel) *domain.ServicePlan {
	p := &domain.ServicePlan{
		ID:                 m.ID,
		CompanyID:          m.CompanyID,
		PlanName:           m.PlanName,
		PlanCategory:       m.PlanCategory,
		PlanDescription:    m.PlanDescription,
		InitialPrice:       m.InitialPrice,
		RecurringPrice:     m.RecurringPrice,
		BillingFrequency:   m.BillingFrequency,
		AllowCustomPricing: m.AllowCustomPricing,
		PestCoverage:       []string(m.PestCoverage),
		HomeSizePricing:    m.HomeSizePricing.pricing,
		YardSizePricing:    m.YardSizePricing.pricing,
	}
	if p.PestCoverage == nil {
		p.PestCoverage = []string{}
	}
	return p
}

func (r *ServicePlanRepository) GetByID(ctx context.Context, id string) (*domain.ServicePlan, error) {
	var m servicePlanModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainPlan(m), nil
}

func (r *ServicePlanRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]domain.ServicePlan, error) {
	var models []servicePlanModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = true", companyID).
		Order("plan_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServicePlan, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPlan(m))
	}
	return out, nil
}

// Save upserts a catalog plan.
func (r *ServicePlanRepository) Save(ctx context.Context, p *domain.ServicePlan) error {
	m := servicePlanModel{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		PlanName:           p.PlanName,
		PlanCategory:       p.PlanCategory,
		PlanDescription:    p.PlanDescription,
		InitialPrice:       p.InitialPrice,
		RecurringPrice:     p.RecurringPrice,
		BillingFrequency:   p.BillingFrequency,
		AllowCustomPricing: p.AllowCustomPricing,
		PestCoverage:       PestList(p.PestCoverage),
		HomeSizePricing:    sizePricingColumn{pricing: p.HomeSizePricing},
		YardSizePricing:    sizePricingColumn{pricing: p.YardSizePricing},
		IsActive:           true,
		UpdatedAt:          time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
}
