package discount

import (
	"database/sql"
	"time"
)

// Type is how the discount value is interpreted.
type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// AppliesTo selects which price component the discount reduces.
type AppliesTo string

const (
	AppliesInitial   AppliesTo = "initial"
	AppliesRecurring AppliesTo = "recurring"
	AppliesBoth      AppliesTo = "both"
)

// TimeRestriction is the discount's availability window mode.
type TimeRestriction string

const (
	RestrictionNone TimeRestriction = "none"
	// RestrictionSeasonal repeats yearly between month/day bounds and may
	// wrap over the year boundary (e.g. Dec 20 - Jan 10).
	RestrictionSeasonal TimeRestriction = "seasonal"
	// RestrictionLimitedTime holds inside one absolute interval.
	RestrictionLimitedTime TimeRestriction = "limited_time"
)

// Eligibility modes for plan scoping.
const (
	EligibilityAll      = "all"
	EligibilitySpecific = "specific"
)

// Discount is a company-level price reduction a sales rep can attach to
// a service-plan line. Availability depends on the caller's role and on
// the discount's time restriction; both are resolved server-side.
type Discount struct {
	ID          string         `db:"id" json:"id"`
	CompanyID   string         `db:"company_id" json:"company_id"`
	Name        string         `db:"discount_name" json:"discount_name"`
	Description sql.NullString `db:"description" json:"description,omitempty"`

	DiscountType  Type      `db:"discount_type" json:"discount_type"`
	DiscountValue float64   `db:"discount_value" json:"discount_value"`
	AppliesTo     AppliesTo `db:"applies_to_price" json:"applies_to_price"`

	RequiresManager bool   `db:"requires_manager" json:"requires_manager"`
	EligibilityMode string `db:"eligibility_mode" json:"eligibility_mode"`
	IsActive        bool   `db:"is_active" json:"is_active"`

	TimeRestrictionType TimeRestriction `db:"time_restriction_type" json:"time_restriction_type"`
	SeasonalStartMonth  sql.NullInt64   `db:"seasonal_start_month" json:"seasonal_start_month,omitempty"`
	SeasonalStartDay    sql.NullInt64   `db:"seasonal_start_day" json:"seasonal_start_day,omitempty"`
	SeasonalEndMonth    sql.NullInt64   `db:"seasonal_end_month" json:"seasonal_end_month,omitempty"`
	SeasonalEndDay      sql.NullInt64   `db:"seasonal_end_day" json:"seasonal_end_day,omitempty"`
	LimitedTimeStart    sql.NullTime    `db:"limited_time_start" json:"limited_time_start,omitempty"`
	LimitedTimeEnd      sql.NullTime    `db:"limited_time_end" json:"limited_time_end,omitempty"`

	// Populated from the eligibility join table when EligibilityMode is
	// "specific"; not a column of company_discounts itself.
	EligiblePlanIDs []string `db:"-" json:"eligible_plan_ids,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableAt reports whether the discount's time restriction holds at
// the given instant.
func (d *Discount) AvailableAt(now time.Time) bool {
	switch d.TimeRestrictionType {
	case RestrictionSeasonal:
		if !d.SeasonalStartMonth.Valid || !d.SeasonalStartDay.Valid ||
			!d.SeasonalEndMonth.Valid || !d.SeasonalEndDay.Valid {
			return false
		}
		cur := monthDay(int(now.Month()), now.Day())
		start := monthDay(int(d.SeasonalStartMonth.Int64), int(d.SeasonalStartDay.Int64))
		end := monthDay(int(d.SeasonalEndMonth.Int64), int(d.SeasonalEndDay.Int64))
		if start <= end {
			return cur >= start && cur <= end
		}
		// Window wraps the year boundary.
		return cur >= start || cur <= end
	case RestrictionLimitedTime:
		if !d.LimitedTimeStart.Valid || !d.LimitedTimeEnd.Valid {
			return false
		}
		return !now.Before(d.LimitedTimeStart.Time) && !now.After(d.LimitedTimeEnd.Time)
	default:
		return true
	}
}

// AvailableTo reports whether the caller's role satisfies the manager gate.
func (d *Discount) AvailableTo(isManager bool) bool {
	return !d.RequiresManager || isManager
}

// AppliesToPlan reports whether the discount's plan scope covers planID.
// An empty planID only matches unscoped discounts.
func (d *Discount) AppliesToPlan(planID string) bool {
	if d.EligibilityMode != EligibilitySpecific {
		return true
	}
	for _, id := range d.EligiblePlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}

// monthDay packs a month/day pair into an ordering-friendly integer.
func monthDay(month, day int) int {
	return month*100 + day
}
