package domain

// TierOption is one discrete labeled size bucket. Prices are always
// selected from a bucket, never computed from the raw continuous value.
type TierOption struct {
	Value             string   `json:"value"`
	Label             string   `json:"label"`
	IntervalIndex     int      `json:"interval_index"`
	InitialIncrease   float64  `json:"initial_increase"`
	RecurringIncrease float64  `json:"recurring_increase"`
	RangeStart        float64  `json:"range_start"`
	RangeEnd          *float64 `json:"range_end"` // nil for the unbounded top tier
}

// Unbounded reports whether this is the open-ended "max+" tier.
func (t *TierOption) Unbounded() bool {
	return t.RangeEnd == nil
}

// PricingSettings are the per-company interval tables used to generate
// discrete tier options for home size, yard size and linear footage.
// They are never interpreted for price math outside tier generation.
type PricingSettings struct {
	CompanyID string `json:"company_id"`

	BaseHomeSqFt     float64 `json:"base_home_sq_ft"`
	HomeSqFtInterval float64 `json:"home_sq_ft_interval"`
	MaxHomeSqFt      float64 `json:"max_home_sq_ft"`

	BaseYardAcres     float64 `json:"base_yard_acres"`
	YardAcresInterval float64 `json:"yard_acres_interval"`
	MaxYardAcres      float64 `json:"max_yard_acres"`

	BaseLinearFeet     float64 `json:"base_linear_feet"`
	LinearFeetInterval float64 `json:"linear_feet_interval"`
	MaxLinearFeet      float64 `json:"max_linear_feet"`
}
