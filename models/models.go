package models

import (
	"time"
)

// Event is the structured record shipped to the SIEM collector. Username is
// set by the credential service, Action by the command relay; each is omitted
// when empty so both services keep their own wire shape.
type Event struct {
	EventID   string `json:"event_id"`
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Username  string `json:"username,omitempty"`
	Action    string `json:"action,omitempty"`
	IPAddress string `json:"ip_address"`
	Success   bool   `json:"success"`
	UserAgent string `json:"user_agent,omitempty"`
	Details   string `json:"details"`
	Source    string `json:"source"`
	Severity  string `json:"severity"`
}

// IPBlockRequest is the body of POST /webhook/ip-block and of each entry in
// a bulk request.
type IPBlockRequest struct {
	Action    string `json:"action"`
	IPAddress string `json:"ip_address"`
}

// AutoBlockRequest carries a SIEM alert for the auto-block decision.
type AutoBlockRequest struct {
	IPAddress    string `json:"ip_address"`
	AlertType    string `json:"alert_type"`
	Severity     string `json:"severity"`
	AttemptCount int    `json:"attempt_count"`
	Details      string `json:"details"`
}

// BulkRequest is the body of POST /webhook/bulk-operations.
type BulkRequest struct {
	Operations []IPBlockRequest `json:"operations"`
}

// OperationResult is the per-entry outcome of a bulk operation.
type OperationResult struct {
	Action    string `json:"action"`
	IPAddress string `json:"ip_address"`
	Success   bool   `json:"success"`
	Output    string `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkSummary aggregates a bulk batch.
type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// OperationRecord is one audited command-relay operation.
type OperationRecord struct {
	ID        int       `json:"id"`
	EventType string    `json:"event_type"`
	Action    string    `json:"action"`
	IPAddress string    `json:"ip_address"`
	Success   bool      `json:"success"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}
