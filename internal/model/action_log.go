package model

import (
	"encoding/json"
	"time"
)

// Action kinds recorded in the audit trail.
const (
	ActionUserRegister         = "USER_REGISTER"
	ActionUserLogin            = "USER_LOGIN"
	ActionGoogleLogin          = "GOOGLE_LOGIN"
	ActionProfileUpdate        = "PROFILE_UPDATE"
	ActionLeadCreate           = "LEAD_CREATE"
	ActionLeadUpdate           = "LEAD_UPDATE"
	ActionPropertyUpdateStatus = "PROPERTY_UPDATE_STATUS"
	ActionAdminUserUpdate      = "ADMIN_USER_UPDATE"
)

// ActionLog is append-only: rows are never updated or deleted by the API.
type ActionLog struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	IPAddress *string         `db:"ip_address" json:"ip_address"`
	UserAgent *string         `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type CreateActionLogParams struct {
	UserID    int64
	Action    string
	Details   json.RawMessage
	IPAddress *string
	UserAgent *string
}
