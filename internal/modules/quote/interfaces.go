package quote

import (
	"context"

	"fieldops/internal/domain"
	"fieldops/internal/domain/discount"
	"fieldops/internal/domain/lead"
)

// QuoteRepository defines the interface for quote persistence.
type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	GetByLeadID(ctx context.Context, leadID string) (*domain.Quote, error)
	Create(ctx context.Context, q *domain.Quote) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	UpdateTotals(ctx context.Context, id string, initial, recurring float64) error
	GetLineItem(ctx context.Context, id string) (*domain.LineItem, error)
	InsertLineItem(ctx context.Context, li *domain.LineItem) error
	UpdateLineItem(ctx context.Context, li *domain.LineItem) error
	DeleteLineItem(ctx context.Context, id string) error
	DeleteAllLineItems(ctx context.Context, quoteID string) error
}

// ServicePlanRepository defines the interface for plan catalog lookups.
type ServicePlanRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ServicePlan, error)
}

// AddonRepository defines the interface for add-on catalog lookups.
type AddonRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*domain.AddonService, error)
}

// PricingSettingsRepository defines the interface for company tier tables.
type PricingSettingsRepository interface {
	GetByCompany(ctx context.Context, companyID string) (*domain.PricingSettings, error)
}

// DiscountResolver resolves discount references attached to line items.
type DiscountResolver interface {
	GetByID(ctx context.Context, companyID, id string) (*discount.Discount, error)
}

// LeadRepository supplies the lead snapshot a new quote is seeded from.
type LeadRepository interface {
	GetByID(ctx context.Context, id string) (*lead.Lead, error)
}

// Broadcaster fans a canonical quote out to every session watching its
// lead. Delivery is fire-and-forget.
type Broadcaster interface {
	PublishQuote(leadID string, q *domain.Quote)
}
