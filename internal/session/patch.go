package session

import (
	"fieldops/internal/domain"
	"fieldops/internal/modules/quote"
)

// ApplyCustomPrice builds the patch that switches a line to a custom
// price. The discount is always cleared in the same patch; a line can
// carry a custom price or a discount, never both.
func ApplyCustomPrice(line *domain.LineItem, initial, recurring float64) quote.LineItemPatch {
	enabled := true
	return quote.LineItemPatch{
		ID:                   line.ID,
		DisplayOrder:         line.DisplayOrder,
		IsCustomPriced:       &enabled,
		CustomInitialPrice:   &initial,
		CustomRecurringPrice: &recurring,
		DiscountID:           quote.NullValue(),
	}
}

// ClearCustomPrice builds the patch that returns a line to computed
// pricing. Custom amounts are dropped, not zeroed.
func ClearCustomPrice(line *domain.LineItem) quote.LineItemPatch {
	disabled := false
	return quote.LineItemPatch{
		ID:             line.ID,
		DisplayOrder:   line.DisplayOrder,
		IsCustomPriced: &disabled,
	}
}

// SelectDiscount builds the patch that attaches a discount to a line.
// Only reachable when the line is not custom priced.
func SelectDiscount(line *domain.LineItem, discountID string) quote.LineItemPatch {
	return quote.LineItemPatch{
		ID:           line.ID,
		DisplayOrder: line.DisplayOrder,
		DiscountID:   quote.StringValue(discountID),
	}
}

// ClearDiscount builds the patch that detaches a line's discount.
func ClearDiscount(line *domain.LineItem) quote.LineItemPatch {
	return quote.LineItemPatch{
		ID:           line.ID,
		DisplayOrder: line.DisplayOrder,
		DiscountID:   quote.NullValue(),
	}
}
