package model

import (
	"time"

	"github.com/lib/pq"
)

// Property is an externally sourced listing matched against a lead.
// Ownership is inherited through the parent lead; the row itself carries no
// owner column.
type Property struct {
	ID          int64          `db:"id" json:"id"`
	LeadID      int64          `db:"lead_id" json:"lead_id"`
	Source      string         `db:"source" json:"source"`
	SourceID    string         `db:"source_id" json:"source_id"`
	Title       string         `db:"title" json:"title"`
	Description *string        `db:"description" json:"description"`
	URL         string         `db:"url" json:"url"`
	Price       int            `db:"price" json:"price"`
	City        *string        `db:"city" json:"city"`
	PostalCode  *string        `db:"postal_code" json:"postal_code"`
	Surface     *int           `db:"surface" json:"surface"`
	Rooms       *int           `db:"rooms" json:"rooms"`
	Condition   *string        `db:"condition" json:"condition"`
	Images      pq.StringArray `db:"images" json:"images"`
	MatchScore  *int           `db:"match_score" json:"match_score"`
	Status      PropertyStatus `db:"status" json:"status"`
	PublishedAt *time.Time     `db:"published_at" json:"published_at"`
	DetectedAt  time.Time      `db:"detected_at" json:"detected_at"`
}

// CreatePropertyParams is used by the ingestion side when a scraped listing
// matches a lead.
type CreatePropertyParams struct {
	LeadID      int64
	Source      string
	SourceID    string
	Title       string
	Description *string
	URL         string
	Price       int
	City        *string
	PostalCode  *string
	Surface     *int
	Rooms       *int
	Condition   *string
	Images      []string
	MatchScore  *int
	PublishedAt *time.Time
}
