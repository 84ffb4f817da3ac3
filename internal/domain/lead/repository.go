package lead

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository handles lead data access
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates lead repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves lead by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	var l Lead
	query := `SELECT * FROM leads WHERE id = $1`
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns a company's leads with optional status filter
func (r *Repository) List(ctx context.Context, companyID string, status *Status, limit, offset int) ([]*Lead, int, error) {
	var leads []*Lead
	var total int

	var query string
	var args []interface{}

	if status != nil {
		query = `SELECT * FROM leads WHERE company_id = $1 AND lead_status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = []interface{}{companyID, *status, limit, offset}
		r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads WHERE company_id = $1 AND lead_status = $2`, companyID, *status)
	} else {
		query = `SELECT * FROM leads WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = []interface{}{companyID, limit, offset}
		r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads WHERE company_id = $1`, companyID)
	}

	err := r.db.SelectContext(ctx, &leads, query, args...)
	return leads, total, err
}

// UpdateStatus updates lead pipeline status
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `UPDATE leads SET lead_status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// CountByStatus returns a company's lead counts by pipeline status
func (r *Repository) CountByStatus(ctx context.Context, companyID string) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT lead_status, COUNT(*) FROM leads WHERE company_id = $1 GROUP BY lead_status`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}
