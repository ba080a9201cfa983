package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newWebhookCmd() *cobra.Command {
	var (
		target string
		secret string
	)

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Exercise the command relay's webhook endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebhookSequence(target, secret)
		},
	}

	cmd.Flags().StringVar(&target, "target", "http://localhost:8081", "command relay base URL")
	cmd.Flags().StringVar(&secret, "secret", "your-secret-key-here", "bearer token sent in the Authorization header")
	return cmd
}

type webhookTester struct {
	client *http.Client
	target string
	secret string
}

func runWebhookSequence(target, secret string) error {
	w := &webhookTester{
		client: &http.Client{Timeout: 10 * time.Second},
		target: target,
		secret: secret,
	}

	if !w.health() {
		return fmt.Errorf("health check failed; is the webhook service running at %s?", target)
	}
	fmt.Println("Health check passed")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "block", "ip_address": "192.168.1.250",
	}, "Block IP address")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "list",
	}, "List blocked IPs")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "unblock", "ip_address": "192.168.1.250",
	}, "Unblock IP address")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "status",
	}, "Service status")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "reload",
	}, "Reload configuration")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "explode", "ip_address": "192.168.1.251",
	}, "Invalid action (expect 400)")

	w.post("/webhook/ip-block", map[string]interface{}{
		"action": "block", "ip_address": "10.0.0.999",
	}, "Invalid IP address (expect 400)")

	w.post("/webhook/auto-block", map[string]interface{}{
		"ip_address": "203.0.113.66",
		"alert_type": "brute_force_attack",
		"severity":   "high",
		"details":    "47 failed logins in 60s",
	}, "Auto-block: high severity brute force (expect block)")

	w.post("/webhook/auto-block", map[string]interface{}{
		"ip_address":    "203.0.113.67",
		"alert_type":    "failed_login_attempts",
		"severity":      "medium",
		"attempt_count": 15,
		"details":       "repeated failures",
	}, "Auto-block: many failed logins (expect block)")

	w.post("/webhook/auto-block", map[string]interface{}{
		"ip_address":    "203.0.113.68",
		"alert_type":    "port_scan",
		"severity":      "low",
		"attempt_count": 2,
	}, "Auto-block: unrelated alert (expect skip)")

	w.post("/webhook/bulk-operations", map[string]interface{}{
		"operations": []map[string]interface{}{
			{"action": "block", "ip_address": "198.51.100.10"},
			{"action": "block", "ip_address": "not-an-ip"},
			{"action": "unblock", "ip_address": "198.51.100.10"},
		},
	}, "Bulk operations with one invalid entry")

	return nil
}

func (w *webhookTester) health() bool {
	resp, err := w.client.Get(w.target + "/health")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (w *webhookTester) post(endpoint string, payload interface{}, description string) {
	fmt.Printf("\nTesting: %s\n%s\n", description, strings.Repeat("=", 50))

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, w.target+endpoint, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.secret)

	resp, err := w.client.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\nResponse: %s\n", resp.StatusCode, indentJSON(respBody))
}

func indentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
