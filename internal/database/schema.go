package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'agent',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id            BIGSERIAL PRIMARY KEY,
		agent_id      BIGINT NOT NULL REFERENCES users(id),
		last_name     TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		email         TEXT,
		phone         TEXT,
		property_type TEXT NOT NULL,
		budget_max    INTEGER NOT NULL CHECK (budget_max > 0),
		cities        TEXT[] NOT NULL,
		surface_min   INTEGER,
		surface_max   INTEGER,
		rooms_min     INTEGER,
		rooms_max     INTEGER,
		condition     TEXT,
		urgency       TEXT NOT NULL DEFAULT 'MEDIUM',
		status        TEXT NOT NULL DEFAULT 'IN_PROGRESS',
		notes         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_agent_id ON leads(agent_id)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id           BIGSERIAL PRIMARY KEY,
		lead_id      BIGINT NOT NULL REFERENCES leads(id),
		source       TEXT NOT NULL,
		source_id    TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT,
		url          TEXT NOT NULL,
		price        INTEGER NOT NULL,
		city         TEXT,
		postal_code  TEXT,
		surface      INTEGER,
		rooms        INTEGER,
		condition    TEXT,
		images       TEXT[] NOT NULL DEFAULT '{}',
		match_score  INTEGER CHECK (match_score BETWEEN 0 AND 100),
		status       TEXT NOT NULL DEFAULT 'NEW',
		published_at TIMESTAMPTZ,
		detected_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (source, source_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_lead_id ON properties(lead_id)`,
	`CREATE TABLE IF NOT EXISTS action_logs (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		action     TEXT NOT NULL,
		details    JSONB,
		ip_address TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_action_logs_user_id ON action_logs(user_id)`,
}

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so repeated startups are safe.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
