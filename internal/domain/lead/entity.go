package lead

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Status represents lead pipeline status
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusScheduled Status = "scheduled"
	StatusQuoted    Status = "quoted"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

// Lead represents a prospective customer in a company's sales pipeline.
// A quote is seeded from the lead's pest and property-size data when the
// lead reaches quoted status.
type Lead struct {
	ID        string `db:"id" json:"id"`
	CompanyID string `db:"company_id" json:"company_id"`

	// Contact person
	CustomerName  string         `db:"customer_name" json:"customer_name"`
	CustomerEmail sql.NullString `db:"customer_email" json:"customer_email,omitempty"`
	CustomerPhone sql.NullString `db:"customer_phone" json:"customer_phone,omitempty"`

	// Pest problem
	PestType        sql.NullString `db:"pest_type" json:"pest_type,omitempty"`
	AdditionalPests pq.StringArray `db:"additional_pests" json:"additional_pests"`

	// Property sizing carried into the quote
	HomeSizeRange sql.NullString `db:"home_size_range" json:"home_size_range,omitempty"`
	YardSizeRange sql.NullString `db:"yard_size_range" json:"yard_size_range,omitempty"`

	// Pipeline
	Status     Status         `db:"lead_status" json:"lead_status"`
	AssignedTo sql.NullString `db:"assigned_to" json:"assigned_to,omitempty"`
	Notes      sql.NullString `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsQuoted returns true if the lead has reached the quoting stage
func (l *Lead) IsQuoted() bool {
	return l.Status == StatusQuoted || l.Status == StatusWon
}
