package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldops/internal/domain"
)

type AddonRepository struct {
	db *gorm.DB
}

func NewAddonRepository(db *gorm.DB) *AddonRepository {
	return &AddonRepository{db: db}
}

type addonModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	CompanyID        string    `gorm:"column:company_id"`
	AddonName        string    `gorm:"column:addon_name"`
	AddonDescription string    `gorm:"column:addon_description"`
	AddonCategory    string    `gorm:"column:addon_category"`
	InitialPrice     float64   `gorm:"column:initial_price"`
	RecurringPrice   float64   `gorm:"column:recurring_price"`
	EligibilityMode  string    `gorm:"column:eligibility_mode"`
	IsActive         bool      `gorm:"column:is_active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (addonModel) TableName() string { return "add_on_services" }

type addonEligibilityModel struct {
	AddonID       string `gorm:"column:addon_id"`
	ServicePlanID string `gorm:"column:service_plan_id"`
}

func (addonEligibilityModel) TableName() string { return "addon_service_plan_eligibility" }

func toDomainAddon(m addonModel, planIDs []string) *domain.AddonService {
	return &domain.AddonService{
		ID:               m.ID,
		CompanyID:        m.CompanyID,
		AddonName:        m.AddonName,
		AddonDescription: m.AddonDescription,
		AddonCategory:    m.AddonCategory,
		InitialPrice:     m.InitialPrice,
		RecurringPrice:   m.RecurringPrice,
		IsActive:         m.IsActive,
		EligibilityMode:  m.EligibilityMode,
		EligiblePlanIDs:  planIDs,
	}
}

func (r *AddonRepository) GetByID(ctx context.Context, companyID, id string) (*domain.AddonService, error) {
	var m addonModel
	err := r.db.WithContext(ctx).First(&m, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var planIDs []string
	if m.EligibilityMode == domain.AddonEligibilitySpecific {
		var rows []addonEligibilityModel
		if err := r.db.WithContext(ctx).Where("addon_id = ?", id).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			planIDs = append(planIDs, row.ServicePlanID)
		}
	}
	return toDomainAddon(m, planIDs), nil
}

func (r *AddonRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]domain.AddonService, error) {
	var models []addonModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = true", companyID).
		Order("addon_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.AddonService, 0, len(models))
	for _, m := range models {
		a, err := r.GetByID(ctx, companyID, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

// Save upserts an add-on service and replaces its plan-eligibility rows.
func (r *AddonRepository) Save(ctx context.Context, a *domain.AddonService) error {
	m := addonModel{
		ID:               a.ID,
		CompanyID:        a.CompanyID,
		AddonName:        a.AddonName,
		AddonDescription: a.AddonDescription,
		AddonCategory:    a.AddonCategory,
		InitialPrice:     a.InitialPrice,
		RecurringPrice:   a.RecurringPrice,
		EligibilityMode:  a.EligibilityMode,
		IsActive:         a.IsActive,
		UpdatedAt:        time.Now(),
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("addon_id = ?", a.ID).Delete(&addonEligibilityModel{}).Error; err != nil {
			return err
		}
		for _, planID := range a.EligiblePlanIDs {
			row := addonEligibilityModel{AddonID: a.ID, ServicePlanID: planID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
