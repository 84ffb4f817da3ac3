package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldops/internal/domain"
)

type PricingSettingsRepository struct {
	db *gorm.DB
}

func NewPricingSettingsRepository(db *gorm.DB) *PricingSettingsRepository {
	return &PricingSettingsRepository{db: db}
}

type pricingSettingsModel struct {
	CompanyID          string    `gorm:"column:company_id;primaryKey"`
	BaseHomeSqFt       float64   `gorm:"column:base_home_sq_ft"`
	HomeSqFtInterval   float64   `gorm:"column:home_sq_ft_interval"`
	MaxHomeSqFt        float64   `gorm:"column:max_home_sq_ft"`
	BaseYardAcres      float64   `gorm:"column:base_yard_acres"`
	YardAcresInterval  float64   `gorm:"column:yard_acres_interval"`
	MaxYardAcres       float64   `gorm:"column:max_yard_acres"`
	BaseLinearFeet     float64   `gorm:"column:base_linear_feet"`
	LinearFeetInterval float64   `gorm:"column:linear_feet_interval"`
	MaxLinearFeet      float64   `gorm:"column:max_linear_feet"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (pricingSettingsModel) TableName() string { return "company_pricing_settings" }

func (r *PricingSettingsRepository) GetByCompany(ctx context.Context, companyID string) (*domain.PricingSettings, error) {
	var m pricingSettingsModel
	if err := r.db.WithContext(ctx).First(&m, "company_id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &domain.PricingSettings{
		CompanyID:          m.CompanyID,
		BaseHomeSqFt:       m.BaseHomeSqFt,
		HomeSqFtInterval:   m.HomeSqFtInterval,
		MaxHomeSqFt:        m.MaxHomeSqFt,
		BaseYardAcres:      m.BaseYardAcres,
		YardAcresInterval:  m.YardAcresInterval,
		MaxYardAcres:       m.MaxYardAcres,
		BaseLinearFeet:     m.BaseLinearFeet,
		LinearFeetInterval: m.LinearFeetInterval,
		MaxLinearFeet:      m.MaxLinearFeet,
	}, nil
}

// Save upserts a company's interval tables.
func (r *PricingSettingsRepository) Save(ctx context.Context, s *domain.PricingSettings) error {
	m := pricingSettingsModel{
		CompanyID:          s.CompanyID,
		BaseHomeSqFt:       s.BaseHomeSqFt,
		HomeSqFtInterval:   s.HomeSqFtInterval,
		MaxHomeSqFt:        s.MaxHomeSqFt,
		BaseYardAcres:      s.BaseYardAcres,
		YardAcresInterval:  s.YardAcresInterval,
		MaxYardAcres:       s.MaxYardAcres,
		BaseLinearFeet:     s.BaseLinearFeet,
		LinearFeetInterval: s.LinearFeetInterval,
		MaxLinearFeet:      s.MaxLinearFeet,
		UpdatedAt:          time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
}
