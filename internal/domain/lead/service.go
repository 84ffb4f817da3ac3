package lead

import (
	"context"
)

// Service handles lead business logic
type Service struct {
	repo *Repository
}

// NewService creates lead service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetLead returns a lead scoped to the caller's company
func (s *Service) GetLead(ctx context.Context, companyID, id string) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.CompanyID != companyID {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

// ListLeads returns a page of the company's leads
func (s *Service) ListLeads(ctx context.Context, companyID string, status *Status, limit, offset int) ([]*Lead, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, companyID, status, limit, offset)
}

// UpdateStatus moves a lead to another pipeline stage
func (s *Service) UpdateStatus(ctx context.Context, companyID, id string, status Status) error {
	switch status {
	case StatusNew, StatusContacted, StatusScheduled, StatusQuoted, StatusWon, StatusLost:
	default:
		return ErrInvalidStatus
	}
	if _, err := s.GetLead(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// GetStats returns pipeline counts for the company
func (s *Service) GetStats(ctx context.Context, companyID string) (*StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return &StatsResponse{Total: total, ByStatus: counts}, nil
}
