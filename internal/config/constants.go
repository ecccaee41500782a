package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Outbound workflow webhook timeout; the notification is best-effort and
// must never stall a primary response beyond this bound.
const WorkflowTriggerTimeout = 10 * time.Second

// Google userinfo lookup timeout for federated login
const GoogleVerifyTimeout = 10 * time.Second

// Audit recorder buffer; entries beyond this are dropped, not blocked on
const AuditQueueSize = 256

// Rate limit window for the per-IP limiter
const RateLimitWindow = time.Minute
