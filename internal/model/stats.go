package model

// AdminStats is the dashboard summary exposed on the admin surface.
type AdminStats struct {
	TotalUsers      int `db:"total_users" json:"total_users"`
	ActiveUsers     int `db:"active_users" json:"active_users"`
	TotalLeads      int `db:"total_leads" json:"total_leads"`
	ActiveLeads     int `db:"active_leads" json:"active_leads"`
	TotalProperties int `db:"total_properties" json:"total_properties"`
	PropertiesToday int `db:"properties_today" json:"properties_today"`
}
