package addon

import (
	"context"
	"errors"

	"fieldops/internal/domain"
	"fieldops/internal/repository"
)

// AddonRepository defines the interface for add-on catalog access.
type AddonRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*domain.AddonService, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]domain.AddonService, error)
}

type Service struct {
	addons AddonRepository
}

func NewService(addons AddonRepository) *Service {
	return &Service{addons: addons}
}

// Get resolves one add-on's metadata for line creation.
func (s *Service) Get(ctx context.Context, companyID, addonID string) (*domain.AddonService, error) {
	a, err := s.addons.GetByID(ctx, companyID, addonID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return a, err
}

// ListForPlan returns the company's active add-ons offerable alongside
// the given plan. An empty planID returns only unscoped add-ons.
func (s *Service) ListForPlan(ctx context.Context, companyID, planID string) ([]domain.AddonService, error) {
	all, err := s.addons.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AddonService, 0, len(all))
	for _, a := range all {
		if a.EligibilityMode == domain.AddonEligibilitySpecific && !a.EligibleForPlan(planID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
