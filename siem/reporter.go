// Package siem ships security events to the external collector.
//
// Delivery is best effort: one POST per event with a short timeout, no retry,
// no queue. A slow or dead collector only ever costs the calling request up
// to the client timeout; transport failures are logged and swallowed so
// handler responses never depend on collector health.
package siem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"siem-lab/models"
)

// Reporter delivers one event record. Implementations must not return
// transport failures to the caller.
type Reporter interface {
	Report(event models.Event)
}

// HTTPReporter posts events as JSON to a collector endpoint.
type HTTPReporter struct {
	collectorURL string
	source       string
	client       *http.Client
	logger       *zap.Logger
}

// NewHTTPReporter builds a reporter tagged with the given source (one fixed
// tag per service).
func NewHTTPReporter(collectorURL, source string, timeout time.Duration, logger *zap.Logger) *HTTPReporter {
	return &HTTPReporter{
		collectorURL: collectorURL,
		source:       source,
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Report stamps the event with an ID, UTC timestamp, and the service source
// tag, then posts it to the collector. Errors are logged, never propagated.
func (r *HTTPReporter) Report(event models.Event) {
	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	event.Source = r.source

	body, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("failed to marshal SIEM event", zap.Error(err))
		return
	}

	resp, err := r.client.Post(r.collectorURL, "application/json", bytes.NewReader(body))
	if err != nil {
		r.logger.Error("failed to send event to SIEM collector",
			zap.String("event_type", event.EventType),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		r.logger.Error("SIEM collector rejected event",
			zap.String("event_type", event.EventType),
			zap.Int("status", resp.StatusCode))
		return
	}

	r.logger.Info("SIEM event", zap.String("payload", string(body)))
}

// SeverityForOutcome maps outcome polarity to the credential service's
// severity scheme: failures are high, successes low.
func SeverityForOutcome(success bool) string {
	if success {
		return "low"
	}
	return "high"
}

// RelaySeverity maps outcome polarity to the command relay's scheme:
// successes are medium, failures high.
func RelaySeverity(success bool) string {
	if success {
		return "medium"
	}
	return "high"
}

// Nop discards events; used in tests and as a safe zero-config fallback.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(models.Event) {}

var _ Reporter = (*HTTPReporter)(nil)
var _ Reporter = Nop{}

// String describes the reporter's destination for startup logging.
func (r *HTTPReporter) String() string {
	return fmt.Sprintf("siem collector %s (source=%s)", r.collectorURL, r.source)
}
