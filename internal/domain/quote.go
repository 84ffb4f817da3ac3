package domain

// LineItemKind discriminates the two row shapes a quote can hold.
type LineItemKind string

const (
	LineServicePlan LineItemKind = "service_plan"
	LineAddon       LineItemKind = "addon"
)

// Slots available for concurrent service-plan selections on one quote.
const MaxPlanSlots = 3

// LineItem is one priced row in a quote. Kind decides which reference
// fields are meaningful: service-plan lines occupy a display-order slot
// and may carry a discount or a custom price, add-on lines are matched
// by AddonServiceID only.
type LineItem struct {
	ID           string       `json:"id"`
	QuoteID      string       `json:"quote_id"`
	Kind         LineItemKind `json:"kind"`
	DisplayOrder int          `json:"display_order"`

	// service-plan lines
	ServicePlanID        string   `json:"service_plan_id,omitempty"`
	PlanName             string   `json:"plan_name,omitempty"`
	ServiceFrequency     string   `json:"service_frequency,omitempty"`
	DiscountID           *string  `json:"discount_id,omitempty"`
	DiscountPercentage   float64  `json:"discount_percentage"`
	IsCustomPriced       bool     `json:"is_custom_priced"`
	CustomInitialPrice   *float64 `json:"custom_initial_price,omitempty"`
	CustomRecurringPrice *float64 `json:"custom_recurring_price,omitempty"`

	// add-on lines
	AddonServiceID string `json:"addon_service_id,omitempty"`
	AddonName      string `json:"addon_name,omitempty"`

	InitialPrice        float64 `json:"initial_price"`
	RecurringPrice      float64 `json:"recurring_price"`
	FinalInitialPrice   float64 `json:"final_initial_price"`
	FinalRecurringPrice float64 `json:"final_recurring_price"`
}

func (li *LineItem) IsAddon() bool {
	return li.Kind == LineAddon
}

// Quote is the priced proposal attached to a lead. Totals are derived
// server-side from the line items and never trusted from clients.
type Quote struct {
	ID              string   `json:"id"`
	LeadID          string   `json:"lead_id"`
	CompanyID       string   `json:"company_id"`
	PrimaryPest     *string  `json:"primary_pest"`
	AdditionalPests []string `json:"additional_pests"`
	HomeSizeRange   *string  `json:"home_size_range"`
	YardSizeRange   *string  `json:"yard_size_range"`

	LineItems []LineItem `json:"line_items"`

	TotalInitialPrice   float64 `json:"total_initial_price"`
	TotalRecurringPrice float64 `json:"total_recurring_price"`
}

// PlanLine returns the service-plan line occupying the given slot, or nil.
func (q *Quote) PlanLine(displayOrder int) *LineItem {
	for i := range q.LineItems {
		li := &q.LineItems[i]
		if li.Kind == LineServicePlan && li.DisplayOrder == displayOrder {
			return li
		}
	}
	return nil
}

// AddonLine returns the add-on line for the given add-on service, or nil.
func (q *Quote) AddonLine(addonServiceID string) *LineItem {
	for i := range q.LineItems {
		li := &q.LineItems[i]
		if li.Kind == LineAddon && li.AddonServiceID == addonServiceID {
			return li
		}
	}
	return nil
}

// MaxDisplayOrder returns the highest display order across all lines,
// or -1 for an empty quote. New add-on lines append after it.
func (q *Quote) MaxDisplayOrder() int {
	max := -1
	for i := range q.LineItems {
		if q.LineItems[i].DisplayOrder > max {
			max = q.LineItems[i].DisplayOrder
		}
	}
	return max
}

// HasPrimaryPest reports whether a primary pest is currently selected.
func (q *Quote) HasPrimaryPest() bool {
	return q.PrimaryPest != nil && *q.PrimaryPest != ""
}
