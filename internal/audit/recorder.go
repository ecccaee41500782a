// Package audit appends security-relevant actions to the action log. Writes
// are asynchronous and best-effort: a failure is logged locally and never
// reaches the caller, so the primary operation always stands on its own.
package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/metrics"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
)

const insertTimeout = 5 * time.Second

// RequestMeta carries the request attribution stored with each entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

func MetaFromRequest(r *http.Request) RequestMeta {
	return RequestMeta{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// Recorder queues entries to a single worker goroutine. A full queue drops
// the entry rather than blocking the request path.
type Recorder struct {
	repo  repository.ActionLogRepository
	queue chan model.CreateActionLogParams
	done  chan struct{}
}

func NewRecorder(repo repository.ActionLogRepository, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Recorder{
		repo:  repo,
		queue: make(chan model.CreateActionLogParams, queueSize),
		done:  make(chan struct{}),
	}
}

func (rec *Recorder) Start() {
	go rec.run()
	log.Info().Msg("audit recorder started")
}

// Stop drains queued entries, then returns.
func (rec *Recorder) Stop() {
	close(rec.queue)
	<-rec.done
	log.Info().Msg("audit recorder stopped")
}

// Record enqueues one entry. It never blocks and never returns an error.
func (rec *Recorder) Record(userID int64, action string, details map[string]any, meta RequestMeta) {
	var payload json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("audit: marshal details")
		} else {
			payload = b
		}
	}

	params := model.CreateActionLogParams{
		UserID:  userID,
		Action:  action,
		Details: payload,
	}
	if meta.IPAddress != "" {
		params.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		params.UserAgent = &meta.UserAgent
	}

	select {
	case rec.queue <- params:
	default:
		metrics.AuditEntriesDropped.Inc()
		log.Warn().Str("action", action).Int64("userId", userID).Msg("audit: queue full, entry dropped")
	}
}

func (rec *Recorder) run() {
	defer close(rec.done)

	for params := range rec.queue {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		if err := rec.repo.Insert(ctx, params); err != nil {
			metrics.AuditEntriesDropped.Inc()
			log.Error().Err(err).
				Str("action", params.Action).
				Int64("userId", params.UserID).
				Msg("audit: insert failed, entry lost")
		}
		cancel()
	}
}
