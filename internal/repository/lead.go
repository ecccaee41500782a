package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sigma-matching/api-server-go/internal/model"
)

type LeadRepository interface {
	FindByID(ctx context.Context, id int64, scope Scope) (*model.Lead, error)
	FindAll(ctx context.Context, scope Scope) ([]model.Lead, error)
	Create(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error)
	Update(ctx context.Context, id int64, scope Scope, patch model.LeadPatch) (*model.Lead, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) LeadRepository
}

type leadRepo struct {
	db sqlxDB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) WithTx(tx *sqlx.Tx) LeadRepository {
	return &leadRepo{db: tx}
}

func (r *leadRepo) FindByID(ctx context.Context, id int64, scope Scope) (*model.Lead, error) {
	clause, args := scope.ownerFilter("agent_id", []any{id})
	var lead model.Lead
	err := r.db.GetContext(ctx, &lead, `
		SELECT * FROM leads WHERE id = $1`+clause, args...)
	return HandleNotFound(&lead, err)
}

func (r *leadRepo) FindAll(ctx context.Context, scope Scope) ([]model.Lead, error) {
	clause, args := scope.ownerFilter("agent_id", nil)
	var leads []model.Lead
	err := r.db.SelectContext(ctx, &leads, `
		SELECT * FROM leads WHERE TRUE`+clause+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// Create stamps the owner from agentID, which the service takes from the
// authenticated caller, never from the request body.
func (r *leadRepo) Create(ctx context.Context, agentID int64, params model.CreateLeadParams) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.GetContext(ctx, &lead, `
		INSERT INTO leads (
			agent_id, last_name, first_name, email, phone, property_type,
			budget_max, cities, surface_min, surface_max, rooms_min, rooms_max,
			condition, urgency, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING *
	`, agentID, params.LastName, params.FirstName, params.Email, params.Phone,
		params.PropertyType, params.BudgetMax, pq.Array(params.Cities),
		params.SurfaceMin, params.SurfaceMax, params.RoomsMin, params.RoomsMax,
		params.Condition, params.Urgency, params.Notes)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// Update applies the allow-listed patch fields and always refreshes
// updated_at in the same write. A scoped miss surfaces as a nil lead.
func (r *leadRepo) Update(ctx context.Context, id int64, scope Scope, patch model.LeadPatch) (*model.Lead, error) {
	var cities any
	if patch.Cities != nil {
		cities = pq.Array(patch.Cities)
	}

	args := []any{
		id, patch.LastName, patch.FirstName, patch.Email, patch.Phone,
		patch.PropertyType, patch.BudgetMax, cities, patch.SurfaceMin,
		patch.SurfaceMax, patch.RoomsMin, patch.RoomsMax, patch.Condition,
		patch.Urgency, patch.Status, patch.Notes, time.Now(),
	}
	clause, args := scope.ownerFilter("agent_id", args)

	var lead model.Lead
	err := r.db.GetContext(ctx, &lead, `
		UPDATE leads SET
			last_name = COALESCE($2, last_name),
			first_name = COALESCE($3, first_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			property_type = COALESCE($6, property_type),
			budget_max = COALESCE($7, budget_max),
			cities = COALESCE($8, cities),
			surface_min = COALESCE($9, surface_min),
			surface_max = COALESCE($10, surface_max),
			rooms_min = COALESCE($11, rooms_min),
			rooms_max = COALESCE($12, rooms_max),
			condition = COALESCE($13, condition),
			urgency = COALESCE($14, urgency),
			status = COALESCE($15, status),
			notes = COALESCE($16, notes),
			updated_at = $17
		WHERE id = $1`+clause+`
		RETURNING *`, args...)
	return HandleNotFound(&lead, err)
}
