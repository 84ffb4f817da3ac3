package domain

// Eligibility modes for add-on services.
const (
	AddonEligibilityAll      = "all"
	AddonEligibilitySpecific = "specific"
)

// AddonService is an unordered priced extra that can be attached to a
// quote independently of the three service-plan slots.
type AddonService struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	AddonName        string  `json:"addon_name"`
	AddonDescription string  `json:"addon_description,omitempty"`
	AddonCategory    string  `json:"addon_category,omitempty"`
	InitialPrice     float64 `json:"initial_price"`
	RecurringPrice   float64 `json:"recurring_price"`
	IsActive         bool    `json:"is_active"`

	EligibilityMode string   `json:"eligibility_mode"`
	EligiblePlanIDs []string `json:"eligible_plan_ids,omitempty"`
}

// EligibleForPlan reports whether the add-on may be offered alongside
// the given service plan.
func (a *AddonService) EligibleForPlan(planID string) bool {
	if a.EligibilityMode != AddonEligibilitySpecific {
		return true
	}
	for _, id := range a.EligiblePlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}
