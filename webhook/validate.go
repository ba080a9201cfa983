package webhook

import (
	"strings"
)

// validActions is the closed set of operations the blocker script accepts.
var validActions = []string{"block", "unblock", "list", "reload", "status"}

func isValidAction(action string) bool {
	for _, a := range validActions {
		if action == a {
			return true
		}
	}
	return false
}

// actionNeedsIP reports whether action requires a target address.
func actionNeedsIP(action string) bool {
	return action == "block" || action == "unblock"
}

// ValidIPv4 reports whether s is a dotted quad: four 1-3 digit decimal
// octets, each in [0,255]. Deliberately stricter than net.ParseIP, which
// also accepts IPv6 and other textual forms the blocker script does not.
func ValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		n := 0
		for _, ch := range part {
			if ch < '0' || ch > '9' {
				return false
			}
			n = n*10 + int(ch-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}
