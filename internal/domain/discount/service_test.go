package discount

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetByID(ctx context.Context, companyID, id string) (*Discount, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Discount), args.Error(1)
}

func (m *MockStore) ListActive(ctx context.Context, companyID string) ([]Discount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Discount), args.Error(1)
}

func seasonal(name string, startMonth, startDay, endMonth, endDay int) Discount {
	return Discount{
		ID:                  name,
		Name:                name,
		DiscountType:        TypePercentage,
		DiscountValue:       10,
		AppliesTo:           AppliesBoth,
		EligibilityMode:     EligibilityAll,
		IsActive:            true,
		TimeRestrictionType: RestrictionSeasonal,
		SeasonalStartMonth:  sql.NullInt64{Int64: int64(startMonth), Valid: true},
		SeasonalStartDay:    sql.NullInt64{Int64: int64(startDay), Valid: true},
		SeasonalEndMonth:    sql.NullInt64{Int64: int64(endMonth), Valid: true},
		SeasonalEndDay:      sql.NullInt64{Int64: int64(endDay), Valid: true},
	}
}

func availableAt(t *testing.T, d Discount, now time.Time) bool {
	t.Helper()

	store := new(MockStore)
	store.On("ListActive", mock.Anything, "company-1").Return([]Discount{d}, nil)

	svc := NewService(store)
	svc.now = func() time.Time { return now }

	out, err := svc.Available(context.Background(), "company-1", "", false)
	require.NoError(t, err)
	return len(out) == 1
}

func TestAvailable_SeasonalYearWraparound(t *testing.T) {
	winter := seasonal("winter-special", 12, 20, 1, 10)

	// The Dec 20 - Jan 10 window crosses the year boundary.
	assert.True(t, availableAt(t, winter, time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)))
	assert.True(t, availableAt(t, winter, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)))
	assert.False(t, availableAt(t, winter, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))

	// Inclusive bounds.
	assert.True(t, availableAt(t, winter, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, availableAt(t, winter, time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)))
}

func TestAvailable_SeasonalSameYearWindow(t *testing.T) {
	summer := seasonal("summer-special", 6, 1, 8, 31)

	assert.True(t, availableAt(t, summer, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, availableAt(t, summer, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, availableAt(t, summer, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)))
}

func TestAvailable_LimitedTimeWindow(t *testing.T) {
	d := Discount{
		ID:                  "flash-sale",
		DiscountType:        TypeFixed,
		DiscountValue:       50,
		AppliesTo:           AppliesInitial,
		EligibilityMode:     EligibilityAll,
		IsActive:            true,
		TimeRestrictionType: RestrictionLimitedTime,
		LimitedTimeStart:    sql.NullTime{Time: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		LimitedTimeEnd:      sql.NullTime{Time: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	assert.True(t, availableAt(t, d, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, availableAt(t, d, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, availableAt(t, d, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestAvailable_ManagerGate(t *testing.T) {
	managerOnly := Discount{
		ID:              "vip",
		DiscountType:    TypePercentage,
		DiscountValue:   25,
		AppliesTo:       AppliesBoth,
		EligibilityMode: EligibilityAll,
		IsActive:        true,
		RequiresManager: true,
	}

	store := new(MockStore)
	store.On("ListActive", mock.Anything, "company-1").Return([]Discount{managerOnly}, nil)
	svc := NewService(store)

	asRep, err := svc.Available(context.Background(), "company-1", "", false)
	require.NoError(t, err)
	assert.Empty(t, asRep)

	asManager, err := svc.Available(context.Background(), "company-1", "", true)
	require.NoError(t, err)
	assert.Len(t, asManager, 1)
}

func TestAvailable_PlanScope(t *testing.T) {
	scoped := Discount{
		ID:              "plan-only",
		DiscountType:    TypePercentage,
		DiscountValue:   15,
		AppliesTo:       AppliesRecurring,
		EligibilityMode: EligibilitySpecific,
		EligiblePlanIDs: []string{"plan-a"},
		IsActive:        true,
	}

	store := new(MockStore)
	store.On("ListActive", mock.Anything, "company-1").Return([]Discount{scoped}, nil)
	svc := NewService(store)

	forPlanA, err := svc.Available(context.Background(), "company-1", "plan-a", false)
	require.NoError(t, err)
	assert.Len(t, forPlanA, 1)

	forPlanB, err := svc.Available(context.Background(), "company-1", "plan-b", false)
	require.NoError(t, err)
	assert.Empty(t, forPlanB)

	noPlan, err := svc.Available(context.Background(), "company-1", "", false)
	require.NoError(t, err)
	assert.Empty(t, noPlan)
}
