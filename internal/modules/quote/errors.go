package quote

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("quote not found")
	ErrLineItemNotFound     = errors.New("line item not found")
	ErrPlanNotFound         = errors.New("service plan not found")
	ErrAddonNotFound        = errors.New("add-on service not found")
	ErrSlotConflict         = errors.New("display order slot already occupied")
	ErrAddonNotEligible     = errors.New("add-on not eligible for selected plan")
	ErrDiscountNotEligible  = errors.New("discount not applicable to this plan")
	ErrCustomPriceForbidden = errors.New("plan does not allow custom pricing")
)
