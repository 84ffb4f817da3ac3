package quote

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain"
	"fieldops/internal/domain/discount"
	"fieldops/internal/domain/lead"
	"fieldops/internal/repository"
)

// fakeQuoteStore is an in-memory QuoteRepository. The update flow reads
// back what it writes, so a stateful fake is simpler than a call mock.
type fakeQuoteStore struct {
	mu     sync.Mutex
	quotes map[string]domain.Quote
	lines  map[string]domain.LineItem
	seq    int
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{
		quotes: make(map[string]domain.Quote),
		lines:  make(map[string]domain.LineItem),
	}
}

func (f *fakeQuoteStore) seed(q domain.Quote, lines ...domain.LineItem) {
	f.quotes[q.ID] = q
	for _, li := range lines {
		f.lines[li.ID] = li
	}
}

func (f *fakeQuoteStore) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := q
	out.LineItems = nil
	for _, li := range f.lines {
		if li.QuoteID == id {
			out.LineItems = append(out.LineItems, li)
		}
	}
	sort.Slice(out.LineItems, func(i, j int) bool {
		return out.LineItems[i].DisplayOrder < out.LineItems[j].DisplayOrder
	})
	return &out, nil
}

func (f *fakeQuoteStore) GetByLeadID(ctx context.Context, leadID string) (*domain.Quote, error) {
	f.mu.Lock()
	var id string
	for _, q := range f.quotes {
		if q.LeadID == leadID {
			id = q.ID
		}
	}
	f.mu.Unlock()
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeQuoteStore) Create(ctx context.Context, q *domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes[q.ID] = *q
	return nil
}

func (f *fakeQuoteStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "primary_pest":
			if v == nil {
				q.PrimaryPest = nil
			} else {
				s := v.(string)
				q.PrimaryPest = &s
			}
		case "additional_pests":
			q.AdditionalPests = []string(v.(repository.PestList))
		case "home_size_range":
			if v == nil {
				q.HomeSizeRange = nil
			} else {
				s := v.(string)
				q.HomeSizeRange = &s
			}
		case "yard_size_range":
			if v == nil {
				q.YardSizeRange = nil
			} else {
				s := v.(string)
				q.YardSizeRange = &s
			}
		}
	}
	f.quotes[id] = q
	return nil
}

func (f *fakeQuoteStore) UpdateTotals(ctx context.Context, id string, initial, recurring float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok {
		return repository.ErrNotFound
	}
	q.TotalInitialPrice = initial
	q.TotalRecurringPrice = recurring
	f.quotes[id] = q
	return nil
}

func (f *fakeQuoteStore) GetLineItem(ctx context.Context, id string) (*domain.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	li, ok := f.lines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &li, nil
}

func (f *fakeQuoteStore) InsertLineItem(ctx context.Context, li *domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if li.Kind == domain.LineServicePlan {
		for _, existing := range f.lines {
			if existing.QuoteID == li.QuoteID &&
				existing.Kind == domain.LineServicePlan &&
				existing.DisplayOrder == li.DisplayOrder {
				return &pgconn.PgError{Code: "23505", ConstraintName: "idx_plan_slot"}
			}
		}
	}
	f.lines[li.ID] = *li
	return nil
}

func (f *fakeQuoteStore) UpdateLineItem(ctx context.Context, li *domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[li.ID]; !ok {
		return repository.ErrNotFound
	}
	f.lines[li.ID] = *li
	return nil
}

func (f *fakeQuoteStore) DeleteLineItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.lines, id)
	return nil
}

func (f *fakeQuoteStore) DeleteAllLineItems(ctx context.Context, quoteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, li := range f.lines {
		if li.QuoteID == quoteID {
			delete(f.lines, id)
		}
	}
	return nil
}

type MockPlanRepo struct{ mock.Mock }

func (m *MockPlanRepo) GetByID(ctx context.Context, id string) (*domain.ServicePlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePlan), args.Error(1)
}

type MockAddonRepo struct{ mock.Mock }

func (m *MockAddonRepo) GetByID(ctx context.Context, companyID, id string) (*domain.AddonService, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddonService), args.Error(1)
}

type MockSettingsRepo struct{ mock.Mock }

func (m *MockSettingsRepo) GetByCompany(ctx context.Context, companyID string) (*domain.PricingSettings, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingSettings), args.Error(1)
}

type MockDiscountResolver struct{ mock.Mock }

func (m *MockDiscountResolver) GetByID(ctx context.Context, companyID, id string) (*discount.Discount, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

type MockLeadRepo struct{ mock.Mock }

func (m *MockLeadRepo) GetByID(ctx context.Context, id string) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

type fixture struct {
	store     *fakeQuoteStore
	plans     *MockPlanRepo
	addons    *MockAddonRepo
	settings  *MockSettingsRepo
	discounts *MockDiscountResolver
	leads     *MockLeadRepo
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		store:     newFakeQuoteStore(),
		plans:     new(MockPlanRepo),
		addons:    new(MockAddonRepo),
		settings:  new(MockSettingsRepo),
		discounts: new(MockDiscountResolver),
		leads:     new(MockLeadRepo),
	}
	f.svc = NewService(f.store, f.plans, f.addons, f.settings, f.discounts, f.leads)
	return f
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func basicPlan() *domain.ServicePlan {
	return &domain.ServicePlan{
		ID:                 "plan-1",
		CompanyID:          "company-1",
		PlanName:           "Quarterly General Pest",
		InitialPrice:       150,
		RecurringPrice:     45,
		BillingFrequency:   "quarterly",
		AllowCustomPricing: true,
		HomeSizePricing: &domain.SizePricing{
			InitialCostPerInterval:   25,
			RecurringCostPerInterval: 10,
		},
	}
}

func seedQuote(f *fixture, lines ...domain.LineItem) domain.Quote {
	q := domain.Quote{
		ID:          "quote-1",
		LeadID:      "lead-1",
		CompanyID:   "company-1",
		PrimaryPest: strPtr("ants"),
	}
	f.store.seed(q, lines...)
	return q
}

func TestUpdateQuote_CustomPriceClearsDiscount(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID:                 "line-1",
		QuoteID:            "quote-1",
		Kind:               domain.LineServicePlan,
		DisplayOrder:       0,
		ServicePlanID:      "plan-1",
		DiscountID:         strPtr("disc-1"),
		DiscountPercentage: 10,
	})
	f.plans.On("GetByID", mock.Anything, "plan-1").Return(basicPlan(), nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(nil, repository.ErrNotFound)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{
			ID:                   "line-1",
			IsCustomPriced:       boolPtr(true),
			CustomInitialPrice:   floatPtr(99),
			CustomRecurringPrice: floatPtr(33),
			DiscountID:           NullValue(),
		}},
	}, false)
	require.NoError(t, err)
	require.Len(t, updated.LineItems, 1)

	li := updated.LineItems[0]
	assert.True(t, li.IsCustomPriced)
	assert.Nil(t, li.DiscountID)
	assert.Equal(t, 0.0, li.DiscountPercentage)
	assert.Equal(t, 99.0, li.FinalInitialPrice)
	assert.Equal(t, 33.0, li.FinalRecurringPrice)
	assert.Equal(t, 99.0, updated.TotalInitialPrice)
	assert.Equal(t, 33.0, updated.TotalRecurringPrice)
}

func TestUpdateQuote_CustomPriceForbiddenWhenPlanDisallows(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID:            "line-1",
		QuoteID:       "quote-1",
		Kind:          domain.LineServicePlan,
		ServicePlanID: "plan-1",
	})
	plan := basicPlan()
	plan.AllowCustomPricing = false
	f.plans.On("GetByID", mock.Anything, "plan-1").Return(plan, nil)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{
			ID:                 "line-1",
			IsCustomPriced:     boolPtr(true),
			CustomInitialPrice: floatPtr(99),
		}},
	}, false)
	assert.ErrorIs(t, err, ErrCustomPriceForbidden)
}

func TestUpdateQuote_PrimaryPestClearResetsQuote(t *testing.T) {
	f := newFixture()
	seedQuote(f,
		domain.LineItem{ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan, ServicePlanID: "plan-1", FinalInitialPrice: 150},
		domain.LineItem{ID: "line-2", QuoteID: "quote-1", Kind: domain.LineAddon, DisplayOrder: 1, AddonServiceID: "addon-1", FinalInitialPrice: 75},
	)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		PrimaryPest: NullValue(),
	}, false)
	require.NoError(t, err)

	assert.Nil(t, updated.PrimaryPest)
	assert.Empty(t, updated.LineItems)
	assert.Equal(t, 0.0, updated.TotalInitialPrice)
	assert.Equal(t, 0.0, updated.TotalRecurringPrice)
}

func TestUpdateQuote_PrimaryPestClearKeepsLinesWithAdditionalPests(t *testing.T) {
	f := newFixture()
	q := domain.Quote{
		ID:              "quote-1",
		LeadID:          "lead-1",
		CompanyID:       "company-1",
		PrimaryPest:     strPtr("ants"),
		AdditionalPests: []string{"spiders"},
	}
	f.store.seed(q, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		ServicePlanID: "plan-1", FinalInitialPrice: 150, FinalRecurringPrice: 45,
	})

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		PrimaryPest: NullValue(),
	}, false)
	require.NoError(t, err)

	assert.Nil(t, updated.PrimaryPest)
	assert.Len(t, updated.LineItems, 1)
	assert.Equal(t, 150.0, updated.TotalInitialPrice)
}

func TestUpdateQuote_CreatesPlanLineWithSizeIncrease(t *testing.T) {
	f := newFixture()
	q := domain.Quote{
		ID:            "quote-1",
		LeadID:        "lead-1",
		CompanyID:     "company-1",
		PrimaryPest:   strPtr("ants"),
		HomeSizeRange: strPtr("2500-3000"),
	}
	f.store.seed(q)
	f.plans.On("GetByID", mock.Anything, "plan-1").Return(basicPlan(), nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(&domain.PricingSettings{
		BaseHomeSqFt:     1500,
		HomeSqFtInterval: 500,
		MaxHomeSqFt:      5000,
	}, nil)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{DisplayOrder: 0, ServicePlanID: "plan-1"}},
	}, false)
	require.NoError(t, err)
	require.Len(t, updated.LineItems, 1)

	// 2500-3000 is interval index 2: +2*25 initial, +2*10 recurring.
	li := updated.LineItems[0]
	assert.Equal(t, 200.0, li.InitialPrice)
	assert.Equal(t, 65.0, li.RecurringPrice)
	assert.Equal(t, 200.0, li.FinalInitialPrice)
	assert.Equal(t, 200.0, updated.TotalInitialPrice)
	assert.Equal(t, 65.0, updated.TotalRecurringPrice)
}

func TestUpdateQuote_SlotConflict(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		DisplayOrder: 0, ServicePlanID: "plan-1",
	})
	f.plans.On("GetByID", mock.Anything, "plan-2").Return(&domain.ServicePlan{
		ID: "plan-2", CompanyID: "company-1", PlanName: "Other", InitialPrice: 100,
	}, nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(nil, repository.ErrNotFound)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{DisplayOrder: 0, ServicePlanID: "plan-2"}},
	}, false)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUpdateQuote_PlanChangeRecreatesLine(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		DisplayOrder: 0, ServicePlanID: "plan-1", DiscountID: strPtr("disc-1"),
	})
	f.plans.On("GetByID", mock.Anything, "plan-2").Return(&domain.ServicePlan{
		ID: "plan-2", CompanyID: "company-1", PlanName: "Premium", InitialPrice: 300, RecurringPrice: 90,
	}, nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(nil, repository.ErrNotFound)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{ID: "line-1", DisplayOrder: 0, ServicePlanID: "plan-2"}},
	}, false)
	require.NoError(t, err)
	require.Len(t, updated.LineItems, 1)

	li := updated.LineItems[0]
	assert.NotEqual(t, "line-1", li.ID)
	assert.Equal(t, "plan-2", li.ServicePlanID)
	assert.Equal(t, 300.0, li.InitialPrice)
	// The old line's discount does not carry over to the new plan.
	assert.Nil(t, li.DiscountID)
}

func TestUpdateQuote_AddonToggleIsIdempotent(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID: "line-2", QuoteID: "quote-1", Kind: domain.LineAddon,
		DisplayOrder: 1, AddonServiceID: "addon-1",
		FinalInitialPrice: 75, FinalRecurringPrice: 20,
	})

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{AddonServiceID: "addon-1", DisplayOrder: 2}},
	}, false)
	require.NoError(t, err)

	// The add-on is already on the quote, so nothing changes.
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, "line-2", updated.LineItems[0].ID)
}

func TestUpdateQuote_AddonEligibility(t *testing.T) {
	f := newFixture()
	seedQuote(f, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		DisplayOrder: 0, ServicePlanID: "plan-1",
	})
	f.addons.On("GetByID", mock.Anything, "company-1", "addon-1").Return(&domain.AddonService{
		ID: "addon-1", CompanyID: "company-1", AddonName: "Mosquito Treatment",
		InitialPrice: 75, RecurringPrice: 20,
		EligibilityMode: domain.AddonEligibilitySpecific,
		EligiblePlanIDs: []string{"plan-9"},
	}, nil)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		LineItems: []LineItemPatch{{AddonServiceID: "addon-1"}},
	}, false)
	assert.ErrorIs(t, err, ErrAddonNotEligible)
}

func eligibleDiscount() *discount.Discount {
	return &discount.Discount{
		ID:              "disc-1",
		CompanyID:       "company-1",
		Name:            "New Customer",
		DiscountType:    discount.TypePercentage,
		DiscountValue:   10,
		AppliesTo:       discount.AppliesBoth,
		IsActive:        true,
		EligibilityMode: discount.EligibilityAll,
	}
}

func attachDiscountReq() UpdateQuoteRequest {
	return UpdateQuoteRequest{
		LineItems: []LineItemPatch{{ID: "line-1", DiscountID: StringValue("disc-1")}},
	}
}

func seedDiscountLine(f *fixture) {
	seedQuote(f, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		DisplayOrder: 0, ServicePlanID: "plan-1",
	})
	f.plans.On("GetByID", mock.Anything, "plan-1").Return(basicPlan(), nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(nil, repository.ErrNotFound)
}

func TestUpdateQuote_AttachDiscount(t *testing.T) {
	f := newFixture()
	seedDiscountLine(f)
	f.discounts.On("GetByID", mock.Anything, "company-1", "disc-1").Return(eligibleDiscount(), nil)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", attachDiscountReq(), false)
	require.NoError(t, err)

	li := updated.LineItems[0]
	require.NotNil(t, li.DiscountID)
	assert.Equal(t, 10.0, li.DiscountPercentage)
	assert.Equal(t, 135.0, li.FinalInitialPrice)
	assert.Equal(t, 40.5, li.FinalRecurringPrice)
}

func TestUpdateQuote_InactiveDiscountRejected(t *testing.T) {
	f := newFixture()
	seedDiscountLine(f)
	d := eligibleDiscount()
	d.IsActive = false
	f.discounts.On("GetByID", mock.Anything, "company-1", "disc-1").Return(d, nil)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", attachDiscountReq(), false)
	assert.ErrorIs(t, err, ErrDiscountNotEligible)
}

func TestUpdateQuote_ManagerOnlyDiscountNeedsManager(t *testing.T) {
	f := newFixture()
	seedDiscountLine(f)
	d := eligibleDiscount()
	d.RequiresManager = true
	f.discounts.On("GetByID", mock.Anything, "company-1", "disc-1").Return(d, nil)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", attachDiscountReq(), false)
	assert.ErrorIs(t, err, ErrDiscountNotEligible)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", attachDiscountReq(), true)
	require.NoError(t, err)
	require.NotNil(t, updated.LineItems[0].DiscountID)
	assert.Equal(t, "disc-1", *updated.LineItems[0].DiscountID)
}

func TestUpdateQuote_ExpiredDiscountRejected(t *testing.T) {
	f := newFixture()
	seedDiscountLine(f)
	d := eligibleDiscount()
	d.TimeRestrictionType = discount.RestrictionLimitedTime
	d.LimitedTimeStart = sql.NullTime{Time: time.Now().Add(-48 * time.Hour), Valid: true}
	d.LimitedTimeEnd = sql.NullTime{Time: time.Now().Add(-24 * time.Hour), Valid: true}
	f.discounts.On("GetByID", mock.Anything, "company-1", "disc-1").Return(d, nil)

	_, err := f.svc.UpdateQuote(context.Background(), "quote-1", attachDiscountReq(), false)
	assert.ErrorIs(t, err, ErrDiscountNotEligible)
}

func TestUpdateQuote_SizeChangeKeepsAttachedDiscount(t *testing.T) {
	f := newFixture()
	q := domain.Quote{
		ID: "quote-1", LeadID: "lead-1", CompanyID: "company-1",
		PrimaryPest: strPtr("ants"),
	}
	f.store.seed(q, domain.LineItem{
		ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan,
		DisplayOrder: 0, ServicePlanID: "plan-1",
		DiscountID: strPtr("disc-1"), DiscountPercentage: 10,
	})
	f.plans.On("GetByID", mock.Anything, "plan-1").Return(basicPlan(), nil)
	f.settings.On("GetByCompany", mock.Anything, "company-1").Return(&domain.PricingSettings{
		BaseHomeSqFt: 1500, HomeSqFtInterval: 500, MaxHomeSqFt: 5000,
	}, nil)
	// The discount has since gone inactive; a reprice still honors it
	// because it was attached while eligible.
	d := eligibleDiscount()
	d.IsActive = false
	f.discounts.On("GetByID", mock.Anything, "company-1", "disc-1").Return(d, nil)

	updated, err := f.svc.UpdateQuote(context.Background(), "quote-1", UpdateQuoteRequest{
		HomeSizeRange: StringValue("2500-3000"),
	}, false)
	require.NoError(t, err)

	li := updated.LineItems[0]
	require.NotNil(t, li.DiscountID)
	assert.Equal(t, 200.0, li.InitialPrice)
	assert.Equal(t, 180.0, li.FinalInitialPrice)
	assert.Equal(t, 58.5, li.FinalRecurringPrice)
}

func TestDeleteLineItem_RecomputesTotals(t *testing.T) {
	f := newFixture()
	seedQuote(f,
		domain.LineItem{ID: "line-1", QuoteID: "quote-1", Kind: domain.LineServicePlan, ServicePlanID: "plan-1", FinalInitialPrice: 150, FinalRecurringPrice: 45},
		domain.LineItem{ID: "line-2", QuoteID: "quote-1", Kind: domain.LineAddon, DisplayOrder: 1, AddonServiceID: "addon-1", FinalInitialPrice: 75, FinalRecurringPrice: 20},
	)

	updated, err := f.svc.DeleteLineItem(context.Background(), "line-2")
	require.NoError(t, err)

	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, 150.0, updated.TotalInitialPrice)
	assert.Equal(t, 45.0, updated.TotalRecurringPrice)
}

func TestDeleteLineItem_NotFound(t *testing.T) {
	f := newFixture()
	seedQuote(f)

	_, err := f.svc.DeleteLineItem(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestGetOrCreateForLead_CreatesDraft(t *testing.T) {
	f := newFixture()
	f.leads.On("GetByID", mock.Anything, "lead-7").Return(&lead.Lead{
		ID:        "lead-7",
		CompanyID: "company-1",
	}, nil)

	q, err := f.svc.GetOrCreateForLead(context.Background(), "lead-7")
	require.NoError(t, err)
	assert.Equal(t, "lead-7", q.LeadID)
	assert.Equal(t, "company-1", q.CompanyID)
	assert.Empty(t, q.LineItems)

	// A second call returns the same quote instead of creating another.
	again, err := f.svc.GetOrCreateForLead(context.Background(), "lead-7")
	require.NoError(t, err)
	assert.Equal(t, q.ID, again.ID)
}

func TestGetQuote_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetQuote(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
