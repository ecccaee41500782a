package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sigma-matching/api-server-go/internal/model"
)

type StatsRepository interface {
	Collect(ctx context.Context) (*model.AdminStats, error)
}

type statsRepo struct {
	db sqlxDB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) Collect(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users)                                                  AS total_users,
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE)                           AS active_users,
			(SELECT COUNT(*) FROM leads)                                                  AS total_leads,
			(SELECT COUNT(*) FROM leads WHERE status = 'IN_PROGRESS')                     AS active_leads,
			(SELECT COUNT(*) FROM properties)                                             AS total_properties,
			(SELECT COUNT(*) FROM properties WHERE detected_at::date = CURRENT_DATE)      AS properties_today
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
