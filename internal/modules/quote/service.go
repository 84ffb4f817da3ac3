package quote

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"fieldops/internal/domain"
	"fieldops/internal/domain/discount"
	"fieldops/internal/domain/lead"
	"fieldops/internal/modules/pricing"
	"fieldops/internal/repository"
)

type Service struct {
	quotes    QuoteRepository
	plans     ServicePlanRepository
	addons    AddonRepository
	settings  PricingSettingsRepository
	discounts DiscountResolver
	leads     LeadRepository
}

func NewService(
	quotes QuoteRepository,
	plans ServicePlanRepository,
	addons AddonRepository,
	settings PricingSettingsRepository,
	discounts DiscountResolver,
	leads LeadRepository,
) *Service {
	return &Service{
		quotes:    quotes,
		plans:     plans,
		addons:    addons,
		settings:  settings,
		discounts: discounts,
		leads:     leads,
	}
}

// GetQuote returns a quote with its line items in display order.
func (s *Service) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return q, err
}

// GetOrCreateForLead returns the lead's quote, creating a minimal draft
// seeded from the lead's pest and property-size data when none exists.
func (s *Service) GetOrCreateForLead(ctx context.Context, leadID string) (*domain.Quote, error) {
	q, err := s.quotes.GetByLeadID(ctx, leadID)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.leads == nil {
		return nil, ErrNotFound
	}
	l, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, lead.ErrLeadNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	draft := &domain.Quote{
		ID:              uuid.NewString(),
		LeadID:          l.ID,
		CompanyID:       l.CompanyID,
		AdditionalPests: []string(l.AdditionalPests),
	}
	if l.PestType.Valid && l.PestType.String != "" {
		draft.PrimaryPest = &l.PestType.String
	}
	if l.HomeSizeRange.Valid {
		draft.HomeSizeRange = &l.HomeSizeRange.String
	}
	if l.YardSizeRange.Valid {
		draft.YardSizeRange = &l.YardSizeRange.String
	}
	if err := s.quotes.Create(ctx, draft); err != nil {
		// Another session may have created the quote between the lookup
		// and the insert; the unique lead_id index decides the winner.
		if isUniqueViolation(err) {
			return s.quotes.GetByLeadID(ctx, leadID)
		}
		return nil, err
	}
	return s.quotes.GetByID(ctx, draft.ID)
}

// UpdateQuote applies a partial update and recomputes every derived
// price server-side. The returned quote is the canonical post-apply
// state; callers replace their local copy with it wholesale. isManager
// comes from the caller's token and gates manager-only discounts.
func (s *Service) UpdateQuote(ctx context.Context, id string, req UpdateQuoteRequest, isManager bool) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	homeRange := strOrEmpty(q.HomeSizeRange)
	yardRange := strOrEmpty(q.YardSizeRange)
	pests := q.AdditionalPests

	if req.PrimaryPest.Set {
		if req.PrimaryPest.Valid && req.PrimaryPest.Value != "" {
			fields["primary_pest"] = req.PrimaryPest.Value
		} else {
			fields["primary_pest"] = nil
		}
	}
	if req.AdditionalPests != nil {
		pests = *req.AdditionalPests
		fields["additional_pests"] = repository.PestList(pests)
	}
	if req.HomeSizeRange.Set {
		homeRange = req.HomeSizeRange.Value
		fields["home_size_range"] = nullable(req.HomeSizeRange)
	}
	if req.YardSizeRange.Set {
		yardRange = req.YardSizeRange.Value
		fields["yard_size_range"] = nullable(req.YardSizeRange)
	}

	if len(fields) > 0 {
		if err := s.quotes.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	// Removing the primary pest with nothing left to treat resets the
	// quote entirely: no line items, zero totals.
	primaryCleared := req.PrimaryPest.Set && (!req.PrimaryPest.Valid || req.PrimaryPest.Value == "")
	if primaryCleared && len(pests) == 0 {
		if err := s.quotes.DeleteAllLineItems(ctx, id); err != nil {
			return nil, err
		}
		if err := s.quotes.UpdateTotals(ctx, id, 0, 0); err != nil {
			return nil, err
		}
		return s.quotes.GetByID(ctx, id)
	}

	// A size-range change shifts the tier every plan line prices from,
	// so all of them are repriced before patches apply on top.
	if req.HomeSizeRange.Set || req.YardSizeRange.Set {
		if err := s.repriceAllPlanLines(ctx, q, homeRange, yardRange); err != nil {
			return nil, err
		}
	}

	for _, patch := range req.LineItems {
		if err := s.applyPatch(ctx, q, patch, homeRange, yardRange, isManager); err != nil {
			return nil, err
		}
	}

	if err := s.recalcTotals(ctx, id); err != nil {
		return nil, err
	}
	return s.quotes.GetByID(ctx, id)
}

// DeleteLineItem removes one line and returns the recomputed quote.
func (s *Service) DeleteLineItem(ctx context.Context, lineItemID string) (*domain.Quote, error) {
	li, err := s.quotes.GetLineItem(ctx, lineItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLineItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.quotes.DeleteLineItem(ctx, lineItemID); err != nil {
		return nil, err
	}
	if err := s.recalcTotals(ctx, li.QuoteID); err != nil {
		return nil, err
	}
	return s.quotes.GetByID(ctx, li.QuoteID)
}

// applyPatch routes one line-item patch to the matching mutation shape.
func (s *Service) applyPatch(ctx context.Context, q *domain.Quote, patch LineItemPatch, homeRange, yardRange string, isManager bool) error {
	switch {
	case patch.AddonServiceID != "":
		return s.createAddonLine(ctx, q, patch)
	case patch.ID != "" && patch.ServicePlanID != "":
		return s.replacePlanLine(ctx, q, patch, homeRange, yardRange, isManager)
	case patch.ID != "":
		return s.mergePlanLine(ctx, q, patch, homeRange, yardRange, isManager)
	case patch.ServicePlanID != "":
		return s.createPlanLine(ctx, q, patch, homeRange, yardRange, isManager)
	default:
		return ErrValidation
	}
}

func (s *Service) createPlanLine(ctx context.Context, q *domain.Quote, patch LineItemPatch, homeRange, yardRange string, isManager bool) error {
	if patch.DisplayOrder < 0 || patch.DisplayOrder >= domain.MaxPlanSlots {
		return ErrValidation
	}

	plan, err := s.plans.GetByID(ctx, patch.ServicePlanID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	if err != nil {
		return err
	}

	li := domain.LineItem{
		ID:               uuid.NewString(),
		QuoteID:          q.ID,
		Kind:             domain.LineServicePlan,
		DisplayOrder:     patch.DisplayOrder,
		ServicePlanID:    plan.ID,
		PlanName:         plan.PlanName,
		ServiceFrequency: plan.BillingFrequency,
	}
	if patch.ServiceFrequency != nil {
		li.ServiceFrequency = *patch.ServiceFrequency
	}

	d, err := s.applyOverrides(ctx, q.CompanyID, &li, plan, patch, isManager)
	if err != nil {
		return err
	}
	s.priceLine(ctx, &li, plan, d, homeRange, yardRange)

	if err := s.quotes.InsertLineItem(ctx, &li); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotConflict
		}
		return err
	}
	return nil
}

// replacePlanLine swaps a slot's plan: the old row is deleted and a new
// one created, so a stale id can never keep pricing from the old plan.
func (s *Service) replacePlanLine(ctx context.Context, q *domain.Quote, patch LineItemPatch, homeRange, yardRange string, isManager bool) error {
	if err := s.quotes.DeleteLineItem(ctx, patch.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	patch.ID = ""
	return s.createPlanLine(ctx, q, patch, homeRange, yardRange, isManager)
}

func (s *Service) mergePlanLine(ctx context.Context, q *domain.Quote, patch LineItemPatch, homeRange, yardRange string, isManager bool) error {
	li, err := s.quotes.GetLineItem(ctx, patch.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLineItemNotFound
	}
	if err != nil {
		return err
	}
	if li.Kind != domain.LineServicePlan {
		return ErrValidation
	}

	plan, err := s.plans.GetByID(ctx, li.ServicePlanID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	if err != nil {
		return err
	}
	if patch.ServiceFrequency != nil {
		li.ServiceFrequency = *patch.ServiceFrequency
	}

	d, err := s.applyOverrides(ctx, q.CompanyID, li, plan, patch, isManager)
	if err != nil {
		return err
	}
	if d == nil && li.DiscountID != nil {
		d, err = s.loadDiscount(ctx, q.CompanyID, li.ServicePlanID, *li.DiscountID)
		if err != nil {
			return err
		}
	}
	s.priceLine(ctx, li, plan, d, homeRange, yardRange)
	return s.quotes.UpdateLineItem(ctx, li)
}

func (s *Service) createAddonLine(ctx context.Context, q *domain.Quote, patch LineItemPatch) error {
	// Toggling an already-present add-on back on is a no-op.
	if q.AddonLine(patch.AddonServiceID) != nil {
		return nil
	}

	addon, err := s.addons.GetByID(ctx, q.CompanyID, patch.AddonServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAddonNotFound
	}
	if err != nil {
		return err
	}
	if !addonEligible(addon, q) {
		return ErrAddonNotEligible
	}

	order := patch.DisplayOrder
	if order <= q.MaxDisplayOrder() {
		order = q.MaxDisplayOrder() + 1
	}
	li := domain.LineItem{
		ID:                  uuid.NewString(),
		QuoteID:             q.ID,
		Kind:                domain.LineAddon,
		DisplayOrder:        order,
		AddonServiceID:      addon.ID,
		AddonName:           addon.AddonName,
		InitialPrice:        addon.InitialPrice,
		RecurringPrice:      addon.RecurringPrice,
		FinalInitialPrice:   addon.InitialPrice,
		FinalRecurringPrice: addon.RecurringPrice,
	}
	return s.quotes.InsertLineItem(ctx, &li)
}

// applyOverrides merges the patch's discount and custom-price fields
// into the line. Applying a custom price always clears the discount;
// the two are mutually exclusive.
func (s *Service) applyOverrides(ctx context.Context, companyID string, li *domain.LineItem, plan *domain.ServicePlan, patch LineItemPatch, isManager bool) (*discount.Discount, error) {
	if patch.IsCustomPriced != nil {
		if *patch.IsCustomPriced {
			if !plan.AllowCustomPricing {
				return nil, ErrCustomPriceForbidden
			}
			li.IsCustomPriced = true
			li.CustomInitialPrice = patch.CustomInitialPrice
			li.CustomRecurringPrice = patch.CustomRecurringPrice
			li.DiscountID = nil
			li.DiscountPercentage = 0
		} else {
			li.IsCustomPriced = false
			li.CustomInitialPrice = nil
			li.CustomRecurringPrice = nil
		}
	}

	if li.IsCustomPriced || !patch.DiscountID.Set {
		return nil, nil
	}
	if !patch.DiscountID.Valid || patch.DiscountID.Value == "" {
		li.DiscountID = nil
		li.DiscountPercentage = 0
		return nil, nil
	}

	d, err := s.resolveDiscount(ctx, companyID, plan.ID, patch.DiscountID.Value, isManager)
	if err != nil {
		return nil, err
	}
	li.DiscountID = &d.ID
	if d.DiscountType == discount.TypePercentage {
		li.DiscountPercentage = d.DiscountValue
	} else {
		li.DiscountPercentage = 0
	}
	return d, nil
}

// resolveDiscount vets a discount being newly attached: it must exist,
// apply to the plan, be active, be within its availability window and,
// for manager-only discounts, the caller must hold the manager claim.
func (s *Service) resolveDiscount(ctx context.Context, companyID, planID, discountID string, isManager bool) (*discount.Discount, error) {
	d, err := s.loadDiscount(ctx, companyID, planID, discountID)
	if err != nil {
		return nil, err
	}
	if !d.IsActive || !d.AvailableTo(isManager) || !d.AvailableAt(time.Now()) {
		return nil, ErrDiscountNotEligible
	}
	return d, nil
}

// loadDiscount fetches a discount already on a line so it can be
// repriced. Availability is not re-checked here; a discount attached
// while eligible stays on the line through resizes and merges.
func (s *Service) loadDiscount(ctx context.Context, companyID, planID, discountID string) (*discount.Discount, error) {
	if s.discounts == nil {
		return nil, ErrDiscountNotEligible
	}
	d, err := s.discounts.GetByID(ctx, companyID, discountID)
	if errors.Is(err, discount.ErrNotFound) {
		return nil, ErrDiscountNotEligible
	}
	if err != nil {
		return nil, err
	}
	if !d.AppliesToPlan(planID) {
		return nil, ErrDiscountNotEligible
	}
	return d, nil
}

// priceLine recomputes a plan line's base and final prices from the
// plan's price table, the quote's size tiers and any active override.
func (s *Service) priceLine(ctx context.Context, li *domain.LineItem, plan *domain.ServicePlan, d *discount.Discount, homeRange, yardRange string) {
	initInc, recInc := s.sizeIncreases(ctx, plan, homeRange, yardRange)
	li.InitialPrice = plan.InitialPrice + initInc
	li.RecurringPrice = plan.RecurringPrice + recInc

	switch {
	case li.IsCustomPriced:
		li.FinalInitialPrice = derefOr(li.CustomInitialPrice, li.InitialPrice)
		li.FinalRecurringPrice = derefOr(li.CustomRecurringPrice, li.RecurringPrice)
	case d != nil:
		li.FinalInitialPrice, li.FinalRecurringPrice = applyDiscount(d, li.InitialPrice, li.RecurringPrice)
	default:
		li.FinalInitialPrice = li.InitialPrice
		li.FinalRecurringPrice = li.RecurringPrice
	}
	if li.FinalInitialPrice < 0 {
		li.FinalInitialPrice = 0
	}
	if li.FinalRecurringPrice < 0 {
		li.FinalRecurringPrice = 0
	}
}

// sizeIncreases resolves the quote's stored size ranges against the
// plan's tier tables. Missing settings or an unmatched range contribute
// nothing rather than failing the mutation.
func (s *Service) sizeIncreases(ctx context.Context, plan *domain.ServicePlan, homeRange, yardRange string) (float64, float64) {
	settings, err := s.settings.GetByCompany(ctx, plan.CompanyID)
	if err != nil || settings == nil {
		return 0, 0
	}

	var initInc, recInc float64
	if plan.HomeSizePricing != nil && homeRange != "" {
		options := pricing.GenerateSizeOptions(pricing.HomeSizeConfig(settings), plan.HomeSizePricing)
		if opt := pricing.FindSizeOptionByValue(pricing.ParseRangeValue(homeRange), options); opt != nil {
			initInc += opt.InitialIncrease
			recInc += opt.RecurringIncrease
		}
	}
	if plan.YardSizePricing != nil && yardRange != "" {
		options := pricing.GenerateSizeOptions(pricing.YardSizeConfig(settings), plan.YardSizePricing)
		if opt := pricing.FindSizeOptionByValue(pricing.ParseRangeValue(yardRange), options); opt != nil {
			initInc += opt.InitialIncrease
			recInc += opt.RecurringIncrease
		}
	}
	return initInc, recInc
}

func (s *Service) repriceAllPlanLines(ctx context.Context, q *domain.Quote, homeRange, yardRange string) error {
	for i := range q.LineItems {
		li := q.LineItems[i]
		if li.Kind != domain.LineServicePlan {
			continue
		}
		plan, err := s.plans.GetByID(ctx, li.ServicePlanID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		var d *discount.Discount
		if !li.IsCustomPriced && li.DiscountID != nil {
			d, err = s.loadDiscount(ctx, q.CompanyID, li.ServicePlanID, *li.DiscountID)
			if err != nil && !errors.Is(err, ErrDiscountNotEligible) {
				return err
			}
		}
		s.priceLine(ctx, &li, plan, d, homeRange, yardRange)
		if err := s.quotes.UpdateLineItem(ctx, &li); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) recalcTotals(ctx context.Context, quoteID string) error {
	q, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	var initial, recurring float64
	for i := range q.LineItems {
		initial += q.LineItems[i].FinalInitialPrice
		recurring += q.LineItems[i].FinalRecurringPrice
	}
	return s.quotes.UpdateTotals(ctx, quoteID, initial, recurring)
}

// addonEligible checks the add-on's plan scope against the quote's
// current service-plan lines. With no plan selected yet, scoped add-ons
// are rejected so a later plan choice cannot invalidate the line.
func addonEligible(addon *domain.AddonService, q *domain.Quote) bool {
	if addon.EligibilityMode != domain.AddonEligibilitySpecific {
		return true
	}
	for i := range q.LineItems {
		li := &q.LineItems[i]
		if li.Kind == domain.LineServicePlan && addon.EligibleForPlan(li.ServicePlanID) {
			return true
		}
	}
	return false
}

func applyDiscount(d *discount.Discount, initial, recurring float64) (float64, float64) {
	applyInitial := d.AppliesTo == discount.AppliesInitial || d.AppliesTo == discount.AppliesBoth
	applyRecurring := d.AppliesTo == discount.AppliesRecurring || d.AppliesTo == discount.AppliesBoth

	fi, fr := initial, recurring
	switch d.DiscountType {
	case discount.TypePercentage:
		if applyInitial {
			fi = initial * (1 - d.DiscountValue/100)
		}
		if applyRecurring {
			fr = recurring * (1 - d.DiscountValue/100)
		}
	case discount.TypeFixed:
		if applyInitial {
			fi = initial - d.DiscountValue
		}
		if applyRecurring {
			fr = recurring - d.DiscountValue
		}
	}
	if fi < 0 {
		fi = 0
	}
	if fr < 0 {
		fr = 0
	}
	return fi, fr
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite surfaces the same constraint class as a message only
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func nullable(n NullableString) interface{} {
	if !n.Valid || n.Value == "" {
		return nil
	}
	return n.Value
}
