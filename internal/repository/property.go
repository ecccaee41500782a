package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sigma-matching/api-server-go/internal/model"
)

type PropertyRepository interface {
	// FindByID scopes through the parent lead: the property row itself
	// carries no owner column.
	FindByID(ctx context.Context, id int64, scope Scope) (*model.Property, error)
	// FindByLeadID assumes the caller already resolved the lead under its
	// own scope. Ordering is match score descending with nulls last, then
	// newest detection first.
	FindByLeadID(ctx context.Context, leadID int64) ([]model.Property, error)
	Create(ctx context.Context, params model.CreatePropertyParams) (*model.Property, error)
	UpdateStatus(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) PropertyRepository
}

type propertyRepo struct {
	db sqlxDB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) WithTx(tx *sqlx.Tx) PropertyRepository {
	return &propertyRepo{db: tx}
}

func (r *propertyRepo) FindByID(ctx context.Context, id int64, scope Scope) (*model.Property, error) {
	clause, args := scope.ownerFilter("l.agent_id", []any{id})
	var property model.Property
	err := r.db.GetContext(ctx, &property, `
		SELECT p.* FROM properties p
		JOIN leads l ON p.lead_id = l.id
		WHERE p.id = $1`+clause, args...)
	return HandleNotFound(&property, err)
}

// propertiesByLeadQuery presents the best matches first: score descending,
// unscored rows after every scored one, newest detection breaking ties.
const propertiesByLeadQuery = `
	SELECT * FROM properties
	WHERE lead_id = $1
	ORDER BY match_score DESC NULLS LAST, detected_at DESC
`

func (r *propertyRepo) FindByLeadID(ctx context.Context, leadID int64) ([]model.Property, error) {
	var properties []model.Property
	err := r.db.SelectContext(ctx, &properties, propertiesByLeadQuery, leadID)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepo) Create(ctx context.Context, params model.CreatePropertyParams) (*model.Property, error) {
	var property model.Property
	err := r.db.GetContext(ctx, &property, `
		INSERT INTO properties (
			lead_id, source, source_id, title, description, url, price,
			city, postal_code, surface, rooms, condition, images,
			match_score, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING *
	`, params.LeadID, params.Source, params.SourceID, params.Title,
		params.Description, params.URL, params.Price, params.City,
		params.PostalCode, params.Surface, params.Rooms, params.Condition,
		pq.Array(params.Images), params.MatchScore, params.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepo) UpdateStatus(ctx context.Context, id int64, status model.PropertyStatus) (*model.Property, error) {
	var property model.Property
	err := r.db.GetContext(ctx, &property, `
		UPDATE properties SET status = $2 WHERE id = $1
		RETURNING *
	`, id, status)
	return HandleNotFound(&property, err)
}
