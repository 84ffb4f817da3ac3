package domain

// SizePricing is a service plan's own price table for one size dimension.
// When Tiers is populated it replaces the generated tier sequence entirely,
// so dropdowns always match the table that will actually be charged.
type SizePricing struct {
	InitialCostPerInterval   float64      `json:"initial_cost_per_interval"`
	RecurringCostPerInterval float64      `json:"recurring_cost_per_interval"`
	Tiers                    []TierOption `json:"tiers,omitempty"`
}

// ServicePlan is the company catalog entry a quote line references.
type ServicePlan struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	PlanName         string  `json:"plan_name"`
	PlanCategory     string  `json:"plan_category"`
	PlanDescription  string  `json:"plan_description"`
	InitialPrice     float64 `json:"initial_price"`
	RecurringPrice   float64 `json:"recurring_price"`
	BillingFrequency string  `json:"billing_frequency"`

	AllowCustomPricing bool     `json:"allow_custom_pricing"`
	PestCoverage       []string `json:"pest_coverage"`

	HomeSizePricing *SizePricing `json:"home_size_pricing,omitempty"`
	YardSizePricing *SizePricing `json:"yard_size_pricing,omitempty"`
}

// CoversPest reports whether the plan's coverage list includes the pest.
func (p *ServicePlan) CoversPest(pestID string) bool {
	for _, c := range p.PestCoverage {
		if c == pestID {
			return true
		}
	}
	return false
}
