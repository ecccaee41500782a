package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sigma-matching/api-server-go/internal/model"
)

// ActionLogRepository is append-only: there is deliberately no update or
// delete operation.
type ActionLogRepository interface {
	Insert(ctx context.Context, params model.CreateActionLogParams) error
	FindRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error)
}

type actionLogRepo struct {
	db sqlxDB
}

func NewActionLogRepository(db *sqlx.DB) ActionLogRepository {
	return &actionLogRepo{db: db}
}

func (r *actionLogRepo) Insert(ctx context.Context, params model.CreateActionLogParams) error {
	// jsonb parameters go over the wire as text, not bytea
	var details any
	if len(params.Details) > 0 {
		details = string(params.Details)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO action_logs (user_id, action, details, ip_address, user_agent)
		VALUES ($1, $2, $3::jsonb, $4, $5)
	`, params.UserID, params.Action, details, params.IPAddress, params.UserAgent)
	return err
}

func (r *actionLogRepo) FindRecentByUser(ctx context.Context, userID int64, limit int) ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM action_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
