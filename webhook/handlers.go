package webhook

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"siem-lab/models"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Health is the liveness probe; no authorization, no event.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "webhook-service",
		"timestamp": timestamp(),
	})
}

// IPBlock executes a single validated operation against the blocker script.
func (s *Server) IPBlock(c *gin.Context) {
	if !s.authorize(c) {
		s.report(models.Event{
			EventType: "webhook_unauthorized",
			Action:    "ip_block",
			IPAddress: "unknown",
			Success:   false,
			Details:   "Invalid or missing authorization",
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.IPBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}

	if msg, ok := validateOperation(req); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	success, output := s.executor.Execute(c.Request.Context(), req.Action, req.IPAddress)

	eventIP := req.IPAddress
	if eventIP == "" {
		eventIP = "N/A"
	}
	s.report(models.Event{
		EventType: "webhook_ip_operation",
		Action:    req.Action,
		IPAddress: eventIP,
		Success:   success,
		Details:   output,
	})
	s.recordAudit(models.OperationRecord{
		EventType: "webhook_ip_operation",
		Action:    req.Action,
		IPAddress: req.IPAddress,
		Success:   success,
		Output:    output,
	})

	if success {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"action":     req.Action,
			"ip_address": req.IPAddress,
			"output":     output,
			"timestamp":  timestamp(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":    false,
		"action":     req.Action,
		"ip_address": req.IPAddress,
		"error":      output,
		"timestamp":  timestamp(),
	})
}

// AutoBlock decides whether a SIEM alert warrants blocking its source
// address and, when it does, executes the block.
func (s *Server) AutoBlock(c *gin.Context) {
	if !s.authorize(c) {
		s.report(models.Event{
			EventType: "webhook_unauthorized",
			Action:    "auto_block",
			IPAddress: "unknown",
			Success:   false,
			Details:   "Invalid or missing authorization",
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AutoBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}
	if req.IPAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "IP address is required"})
		return
	}
	if !ValidIPv4(req.IPAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IP address format"})
		return
	}

	shouldBlock, reason := AutoBlockDecision(req)
	if !shouldBlock {
		s.report(models.Event{
			EventType: "auto_block_skipped",
			Action:    "skip",
			IPAddress: req.IPAddress,
			Success:   true,
			Details:   fmt.Sprintf("Alert type: %s, Severity: %s", req.AlertType, req.Severity),
		})
		s.recordAudit(models.OperationRecord{
			EventType: "auto_block_skipped",
			Action:    "skip",
			IPAddress: req.IPAddress,
			Success:   true,
		})
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"action":     "auto_block_skipped",
			"ip_address": req.IPAddress,
			"reason":     "Conditions not met for auto-blocking",
			"timestamp":  timestamp(),
		})
		return
	}

	success, output := s.executor.Execute(c.Request.Context(), "block", req.IPAddress)

	s.report(models.Event{
		EventType: "auto_block",
		Action:    "block",
		IPAddress: req.IPAddress,
		Success:   success,
		Details:   fmt.Sprintf("%s: %s", reason, req.Details),
	})
	s.recordAudit(models.OperationRecord{
		EventType: "auto_block",
		Action:    "block",
		IPAddress: req.IPAddress,
		Success:   success,
		Output:    output,
	})

	if success {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"action":     "auto_block",
			"ip_address": req.IPAddress,
			"reason":     reason,
			"output":     output,
			"timestamp":  timestamp(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":    false,
		"action":     "auto_block",
		"ip_address": req.IPAddress,
		"error":      output,
		"timestamp":  timestamp(),
	})
}

// BulkOperations runs each entry independently: one bad or failing entry
// never aborts the batch.
func (s *Server) BulkOperations(c *gin.Context) {
	if !s.authorize(c) {
		s.report(models.Event{
			EventType: "webhook_unauthorized",
			Action:    "bulk_operations",
			IPAddress: "unknown",
			Success:   false,
			Details:   "Invalid or missing authorization",
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}
	if len(req.Operations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No operations provided"})
		return
	}

	results := make([]models.OperationResult, 0, len(req.Operations))
	for _, op := range req.Operations {
		results = append(results, s.runBulkEntry(c, op))
	}

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	total := len(results)

	s.report(models.Event{
		EventType: "bulk_operation_summary",
		Action:    "bulk",
		IPAddress: "multiple",
		Success:   true,
		Details:   fmt.Sprintf("Completed %d/%d operations", successful, total),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"operations": results,
		"summary": models.BulkSummary{
			Total:      total,
			Successful: successful,
			Failed:     total - successful,
		},
		"timestamp": timestamp(),
	})
}

func (s *Server) runBulkEntry(c *gin.Context, op models.IPBlockRequest) models.OperationResult {
	// Entry validation carries its own, terser messages than the single-op
	// endpoint.
	if op.Action == "" {
		return models.OperationResult{
			Action:    "unknown",
			IPAddress: op.IPAddress,
			Error:     "Action is required",
		}
	}
	if !isValidAction(op.Action) {
		return models.OperationResult{
			Action:    op.Action,
			IPAddress: op.IPAddress,
			Error:     fmt.Sprintf("Invalid action. Must be one of: %v", validActions),
		}
	}
	if actionNeedsIP(op.Action) {
		if op.IPAddress == "" {
			return models.OperationResult{
				Action: op.Action,
				Error:  "IP address is required",
			}
		}
		if !ValidIPv4(op.IPAddress) {
			return models.OperationResult{
				Action:    op.Action,
				IPAddress: op.IPAddress,
				Error:     "Invalid IP address format",
			}
		}
	}

	success, output := s.executor.Execute(c.Request.Context(), op.Action, op.IPAddress)

	eventIP := op.IPAddress
	if eventIP == "" {
		eventIP = "N/A"
	}
	s.report(models.Event{
		EventType: "bulk_operation",
		Action:    op.Action,
		IPAddress: eventIP,
		Success:   success,
		Details:   output,
	})
	s.recordAudit(models.OperationRecord{
		EventType: "bulk_operation",
		Action:    op.Action,
		IPAddress: op.IPAddress,
		Success:   success,
		Output:    output,
	})

	// An executed entry always carries its text under output, even on
	// failure; the error key is reserved for entries that never ran.
	return models.OperationResult{
		Action:    op.Action,
		IPAddress: op.IPAddress,
		Success:   success,
		Output:    output,
	}
}

// validateOperation applies the single-operation rules shared by the direct
// and bulk endpoints.
func validateOperation(op models.IPBlockRequest) (string, bool) {
	if op.Action == "" {
		return "Action is required", false
	}
	if !isValidAction(op.Action) {
		return fmt.Sprintf("Invalid action. Must be one of: %v", validActions), false
	}
	if actionNeedsIP(op.Action) {
		if op.IPAddress == "" {
			return "IP address is required for block/unblock actions", false
		}
		if !ValidIPv4(op.IPAddress) {
			return "Invalid IP address format", false
		}
	}
	return "", true
}

// Operations returns the most recent audited operations, newest first.
func (s *Server) Operations(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}

	if s.audit == nil {
		c.JSON(http.StatusOK, gin.H{"operations": []models.OperationRecord{}})
		return
	}

	records, err := s.audit.RecentOperations(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to read audit log: %v", err)})
		return
	}
	if records == nil {
		records = []models.OperationRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"operations": records})
}
