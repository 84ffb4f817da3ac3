package discount

import (
	"context"
	"time"
)

// Store defines the data access the service needs.
type Store interface {
	GetByID(ctx context.Context, companyID, id string) (*Discount, error)
	ListActive(ctx context.Context, companyID string) ([]Discount, error)
}

// Service resolves which discounts a given caller may offer right now.
// This is the authoritative filter: clients never re-derive eligibility.
type Service struct {
	repo Store
	now  func() time.Time
}

// NewService creates discount service
func NewService(repo Store) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Available returns the discounts offerable for planID by a caller with
// the given manager flag at the current time. Order is whatever the
// store returns (name order).
func (s *Service) Available(ctx context.Context, companyID, planID string, isManager bool) ([]Discount, error) {
	all, err := s.repo.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Discount, 0, len(all))
	for _, d := range all {
		if !d.AvailableTo(isManager) {
			continue
		}
		if !d.AppliesToPlan(planID) {
			continue
		}
		if !d.AvailableAt(now) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// GetByID returns a single discount scoped to the company.
func (s *Service) GetByID(ctx context.Context, companyID, id string) (*Discount, error) {
	return s.repo.GetByID(ctx, companyID, id)
}
