// Package workflow posts domain events to an external automation webhook.
// Notifications are fire-and-forget with a bounded timeout: a slow or failing
// endpoint can never stall or fail the primary request.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/config"
	"github.com/sigma-matching/api-server-go/internal/metrics"
)

// Workflow names understood by the automation side.
const (
	WorkflowLeadCreated = "lead-created"
)

type Notifier struct {
	baseURL string
	client  *http.Client
}

// NewNotifier returns a Notifier. An empty baseURL disables notifications
// entirely; Trigger becomes a no-op.
func NewNotifier(baseURL string) *Notifier {
	return &Notifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: config.WorkflowTriggerTimeout},
	}
}

func (n *Notifier) Enabled() bool {
	return n.baseURL != ""
}

// Trigger dispatches the payload asynchronously. Failures are logged and
// counted, never propagated.
func (n *Notifier) Trigger(workflow string, payload any) {
	if !n.Enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("workflow", workflow).Msg("workflow: marshal payload")
		return
	}

	go n.post(workflow, body)
}

func (n *Notifier) post(workflow string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), config.WorkflowTriggerTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s", n.baseURL, workflow)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("workflow", workflow).Msg("workflow: build request")
		metrics.WorkflowTriggerFailures.WithLabelValues(workflow).Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("workflow", workflow).Msg("workflow: trigger failed")
		metrics.WorkflowTriggerFailures.WithLabelValues(workflow).Inc()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("workflow", workflow).Msg("workflow: trigger rejected")
		metrics.WorkflowTriggerFailures.WithLabelValues(workflow).Inc()
		return
	}

	log.Debug().Str("workflow", workflow).Msg("workflow triggered")
}
