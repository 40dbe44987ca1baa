// Package security holds the rule tables that protect the rest of the
// system from the commands and text flowing through it: secret redaction
// before anything is shown to an LLM or persisted, and the confirmation
// rules the execution gate consults before running a command.
package security

import (
	"regexp"
	"strings"
)

// RedactionMarker replaces any detected secret value.
const RedactionMarker = "***REDACTED***"

// sensitiveKeys is the keyword family that marks a variable or flag name
// as credential-shaped. Compound names (OPENAI_API_KEY, --db-password)
// match through the surrounding \w/- allowances in the patterns below.
const sensitiveKeys = `(?:api[_-]?key|password|secret|token|credential|auth|passwd|pwd|private[_-]?key|access[_-]?token|refresh[_-]?token|session[_-]?id|bearer|authorization)`

// quotedOrBareValue matches a shell-ish value: double-quoted, single-quoted,
// or a bare run up to whitespace.
const quotedOrBareValue = `("[^"\s]*"|'[^'\s]*'|[^\s"']+)`

var (
	// NAME=value and export NAME=value assignments.
	envAssignPattern = regexp.MustCompile(`(?i)((?:export\s+)?[\w-]*` + sensitiveKeys + `[\w-]*\s*=\s*)` + quotedOrBareValue)

	// --flag=value and --flag value arguments.
	flagEqualsPattern = regexp.MustCompile(`(?i)(--[\w-]*` + sensitiveKeys + `[\w-]*)\s*=\s*` + quotedOrBareValue)
	flagSpacePattern  = regexp.MustCompile(`(?i)(--[\w-]*` + sensitiveKeys + `[\w-]*)\s+` + quotedOrBareValue)

	// Authorization/API-key header values.
	headerPattern = regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer\s+|x-api-key\s*:\s*|x-auth-token\s*:\s*)([^\s"']+)`)

	// user:pass@host credentials embedded in URLs.
	urlCredPattern = regexp.MustCompile(`(https?://)([^:/\s]+):([^@/\s]+)@`)

	// Standalone high-entropy tokens.
	bareTokenPattern = regexp.MustCompile(`\b[a-zA-Z0-9]{32,}\b`)
)

// tokenContextWindow is how far around a bare token the path/URL
// exclusion looks.
const tokenContextWindow = 20

// FilterSensitiveData returns line with credential-shaped substrings
// replaced by RedactionMarker. It is a total function: a line containing
// no sensitive pattern comes back unchanged, and redacting twice is a
// no-op. Only secret values are replaced; variable names, header names,
// and shell syntax are preserved.
//
// The passes are order-dependent: URL credentials must be scrubbed before
// the bare-token pass so a long token inside a URL is handled by the
// URL rule, not mangled by the entropy rule.
func FilterSensitiveData(line string) string {
	if line == "" {
		return line
	}

	line = envAssignPattern.ReplaceAllStringFunc(line, func(m string) string {
		sub := envAssignPattern.FindStringSubmatch(m)
		return sub[1] + redactValue(sub[2])
	})

	line = flagEqualsPattern.ReplaceAllStringFunc(line, func(m string) string {
		sub := flagEqualsPattern.FindStringSubmatch(m)
		return sub[1] + "=" + redactValue(sub[2])
	})
	line = flagSpacePattern.ReplaceAllStringFunc(line, func(m string) string {
		sub := flagSpacePattern.FindStringSubmatch(m)
		return sub[1] + " " + redactValue(sub[2])
	})

	line = headerPattern.ReplaceAllString(line, "${1}"+RedactionMarker)

	line = urlCredPattern.ReplaceAllString(line, "${1}"+RedactionMarker+"@")

	return redactBareTokens(line)
}

// redactValue keeps the quoting of the original value so the line stays
// shell-parseable after redaction.
func redactValue(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		quote := string(value[0])
		return quote + RedactionMarker + quote
	}
	return RedactionMarker
}

// redactBareTokens replaces standalone 32+ character alphanumeric runs
// unless the surrounding context looks like a path, URL, or address --
// those are identifiers (commit hashes, cache dirs), not loose secrets.
func redactBareTokens(line string) string {
	matches := bareTokenPattern.FindAllStringIndex(line, -1)
	if matches == nil {
		return line
	}

	var out strings.Builder
	last := 0
	for _, loc := range matches {
		start, end := loc[0], loc[1]
		ctxStart := start - tokenContextWindow
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctxEnd := end + tokenContextWindow
		if ctxEnd > len(line) {
			ctxEnd = len(line)
		}
		window := line[ctxStart:ctxEnd]

		out.WriteString(line[last:start])
		if strings.Contains(window, "/") || strings.Contains(window, "://") || strings.Contains(window, "@") {
			out.WriteString(line[start:end])
		} else {
			out.WriteString(RedactionMarker)
		}
		last = end
	}
	out.WriteString(line[last:])
	return out.String()
}
