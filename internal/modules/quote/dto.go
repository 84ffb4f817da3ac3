package quote

import "encoding/json"

// NullableString distinguishes an absent field from an explicit null in
// a PATCH body. Clearing the primary pest is "primary_pest": null, which
// plain *string decoding cannot tell apart from the field being omitted.
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// StringValue builds a present, non-null field value.
func StringValue(v string) NullableString {
	return NullableString{Set: true, Valid: true, Value: v}
}

// NullValue builds a present, explicitly null field value.
func NullValue() NullableString {
	return NullableString{Set: true}
}

// LineItemPatch is one element of an update request's line_items array.
// A patch with an existing id updates that row; without an id it creates
// a new line at the given display_order (service plans) or for the given
// addon_service_id (add-ons). A patch carrying both an id and a
// service_plan_id replaces the slot's line entirely.
type LineItemPatch struct {
	ID           string `json:"id,omitempty"`
	DisplayOrder int    `json:"display_order"`

	ServicePlanID    string  `json:"service_plan_id,omitempty"`
	ServiceFrequency *string `json:"service_frequency,omitempty"`

	AddonServiceID string `json:"addon_service_id,omitempty"`

	DiscountID NullableString `json:"discount_id,omitzero"`

	IsCustomPriced       *bool    `json:"is_custom_priced,omitempty"`
	CustomInitialPrice   *float64 `json:"custom_initial_price,omitempty"`
	CustomRecurringPrice *float64 `json:"custom_recurring_price,omitempty"`
}

// UpdateQuoteRequest is the body of PUT /quotes/:id. Every field is
// optional; only what is present is applied, then all derived prices and
// totals are recomputed server-side.
type UpdateQuoteRequest struct {
	PrimaryPest     NullableString `json:"primary_pest,omitzero"`
	AdditionalPests *[]string      `json:"additional_pests,omitempty"`
	HomeSizeRange   NullableString `json:"home_size_range,omitzero"`
	YardSizeRange   NullableString `json:"yard_size_range,omitzero"`

	LineItems []LineItemPatch `json:"line_items,omitempty"`
}
