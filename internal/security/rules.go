package security

import "strings"

// ConfirmationRule pairs a command keyword with the human-readable reason
// shown when asking for approval.
type ConfirmationRule struct {
	Keyword string
	Reason  string
}

// confirmationRules require explicit approval before execution. This is a
// separate tier from the parser's danger patterns: a command can need
// confirmation without being categorically unsafe. Evaluated in order,
// first match wins.
var confirmationRules = []ConfirmationRule{
	{"rm", "Delete files"},
	{"mkfs", "Format filesystem"},
	{"dd", "Low-level disk operations"},
	{"chmod", "Change permissions"},
	{"chown", "Change ownership"},
	{"iptables", "Modify firewall rules"},
	{"systemctl", "Control system services"},
}

// RequiresConfirmation reports whether command needs explicit human
// approval before it may run, and why. The reason is always non-empty
// when confirmation is required.
func RequiresConfirmation(command string) (bool, string) {
	lower := strings.ToLower(command)

	if strings.HasPrefix(lower, "sudo") {
		return true, "Command requires elevated privileges"
	}

	for _, rule := range confirmationRules {
		if strings.Contains(lower, rule.Keyword) {
			return true, rule.Reason + " - Please review carefully"
		}
	}

	// Severity fallbacks. The rm keyword above already catches "rm -rf",
	// but the explicit check is kept so the stronger wording survives any
	// future reordering of the keyword table.
	if strings.Contains(lower, "rm -rf") {
		return true, "DANGER: Recursive deletion - This will permanently delete files!"
	}
	if strings.Contains(command, ">") && strings.Contains(command, "/dev/") {
		return true, "DANGER: Writing to device file"
	}

	return false, ""
}
