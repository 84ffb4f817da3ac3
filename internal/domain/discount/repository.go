package discount

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Repository handles discount data access
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates discount repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a discount by ID within a company
func (r *Repository) GetByID(ctx context.Context, companyID, id string) (*Discount, error) {
	var d Discount
	query := `SELECT * FROM company_discounts WHERE id = $1 AND company_id = $2`
	err := r.db.GetContext(ctx, &d, query, id, companyID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.EligibilityMode == EligibilitySpecific {
		if err := r.loadPlanScope(ctx, &d); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

// ListActive returns all active discounts for a company, with plan
// scopes loaded for the "specific" eligibility mode.
func (r *Repository) ListActive(ctx context.Context, companyID string) ([]Discount, error) {
	var out []Discount
	query := `SELECT * FROM company_discounts WHERE company_id = $1 AND is_active = true ORDER BY discount_name`
	if err := r.db.SelectContext(ctx, &out, query, companyID); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].EligibilityMode != EligibilitySpecific {
			continue
		}
		if err := r.loadPlanScope(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) loadPlanScope(ctx context.Context, d *Discount) error {
	query := `SELECT service_plan_id FROM discount_service_plan_eligibility WHERE discount_id = $1`
	return r.db.SelectContext(ctx, &d.EligiblePlanIDs, query, d.ID)
}
