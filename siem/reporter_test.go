package siem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"siem-lab/models"
)

func TestReportPostsStampedEvent(t *testing.T) {
	received := make(chan models.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev models.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received <- ev
	}))
	defer srv.Close()

	r := NewHTTPReporter(srv.URL, "vulnerable-webapp", 2*time.Second, zap.NewNop())
	r.Report(models.Event{
		EventType: "login_failed",
		Username:  "admin",
		IPAddress: "203.0.113.7",
		Success:   false,
		Details:   "Failed login attempt #3 - Invalid credentials",
		Severity:  SeverityForOutcome(false),
	})

	select {
	case ev := <-received:
		assert.Equal(t, "login_failed", ev.EventType)
		assert.Equal(t, "vulnerable-webapp", ev.Source)
		assert.Equal(t, "high", ev.Severity)
		assert.NotEmpty(t, ev.EventID)
		_, err := time.Parse(time.RFC3339Nano, ev.Timestamp)
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("collector never received the event")
	}
}

func TestReportSwallowsTransportFailure(t *testing.T) {
	// Nothing listens here; Report must simply return.
	r := NewHTTPReporter("http://127.0.0.1:1", "webhook-service", 200*time.Millisecond, zap.NewNop())
	r.Report(models.Event{EventType: "webhook_ip_operation", Action: "block"})
}

func TestReportSwallowsCollectorRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewHTTPReporter(srv.URL, "webhook-service", time.Second, zap.NewNop())
	r.Report(models.Event{EventType: "auto_block", Action: "block"})
}

func TestSeverityDerivation(t *testing.T) {
	assert.Equal(t, "low", SeverityForOutcome(true))
	assert.Equal(t, "high", SeverityForOutcome(false))
	assert.Equal(t, "medium", RelaySeverity(true))
	assert.Equal(t, "high", RelaySeverity(false))
}
