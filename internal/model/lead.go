package model

import (
	"time"

	"github.com/lib/pq"
)

// Lead is a prospect's property search request, owned by exactly one agent.
type Lead struct {
	ID           int64          `db:"id" json:"id"`
	AgentID      int64          `db:"agent_id" json:"agent_id"`
	LastName     string         `db:"last_name" json:"last_name"`
	FirstName    string         `db:"first_name" json:"first_name"`
	Email        *string        `db:"email" json:"email"`
	Phone        *string        `db:"phone" json:"phone"`
	PropertyType string         `db:"property_type" json:"property_type"`
	BudgetMax    int            `db:"budget_max" json:"budget_max"`
	Cities       pq.StringArray `db:"cities" json:"cities"`
	SurfaceMin   *int           `db:"surface_min" json:"surface_min"`
	SurfaceMax   *int           `db:"surface_max" json:"surface_max"`
	RoomsMin     *int           `db:"rooms_min" json:"rooms_min"`
	RoomsMax     *int           `db:"rooms_max" json:"rooms_max"`
	Condition    *string        `db:"condition" json:"condition"`
	Urgency      Urgency        `db:"urgency" json:"urgency"`
	Status       LeadStatus     `db:"status" json:"status"`
	Notes        *string        `db:"notes" json:"notes"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// CreateLeadParams never carries an agent id: the owner is always stamped
// from the authenticated caller by the service layer.
type CreateLeadParams struct {
	LastName     string
	FirstName    string
	Email        *string
	Phone        *string
	PropertyType string
	BudgetMax    int
	Cities       []string
	SurfaceMin   *int
	SurfaceMax   *int
	RoomsMin     *int
	RoomsMax     *int
	Condition    *string
	Urgency      Urgency
	Notes        *string
}

// LeadPatch is the allow-list for partial lead updates. Protected columns
// (id, agent_id, timestamps) have no field here, so unknown or disallowed
// JSON keys are dropped at the decoding boundary rather than inspected at
// runtime.
type LeadPatch struct {
	LastName     *string     `json:"last_name"`
	FirstName    *string     `json:"first_name"`
	Email        *string     `json:"email"`
	Phone        *string     `json:"phone"`
	PropertyType *string     `json:"property_type"`
	BudgetMax    *int        `json:"budget_max"`
	Cities       []string    `json:"cities"`
	SurfaceMin   *int        `json:"surface_min"`
	SurfaceMax   *int        `json:"surface_max"`
	RoomsMin     *int        `json:"rooms_min"`
	RoomsMax     *int        `json:"rooms_max"`
	Condition    *string     `json:"condition"`
	Urgency      *Urgency    `json:"urgency"`
	Status       *LeadStatus `json:"status"`
	Notes        *string     `json:"notes"`
}

func (p LeadPatch) IsEmpty() bool {
	return p.LastName == nil && p.FirstName == nil && p.Email == nil &&
		p.Phone == nil && p.PropertyType == nil && p.BudgetMax == nil &&
		p.Cities == nil && p.SurfaceMin == nil && p.SurfaceMax == nil &&
		p.RoomsMin == nil && p.RoomsMax == nil && p.Condition == nil &&
		p.Urgency == nil && p.Status == nil && p.Notes == nil
}
