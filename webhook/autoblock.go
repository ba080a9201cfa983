package webhook

import (
	"strings"

	"siem-lab/models"
)

// autoBlockThreshold is the failed-login count above which an alert triggers
// a block.
const autoBlockThreshold = 10

// AutoBlockDecision applies the fixed auto-block policy to a SIEM alert.
// Rules are checked in order; the first match wins and supplies the reason.
func AutoBlockDecision(req models.AutoBlockRequest) (bool, string) {
	alertType := strings.ToLower(req.AlertType)

	switch {
	case req.Severity == "high" && strings.Contains(alertType, "brute_force"):
		return true, "High severity brute force attack"
	case strings.Contains(alertType, "failed_login_attempts") && req.AttemptCount > autoBlockThreshold:
		return true, "Multiple failed login attempts"
	case strings.Contains(alertType, "suspicious_activity"):
		return true, "Suspicious activity detected"
	}
	return false, ""
}
