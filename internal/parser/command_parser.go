package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Baseline confidence per extraction source. Fenced code blocks are the
// strongest signal that the model intends "run this"; prompt-prefixed
// lines are the weakest.
const (
	codeBlockConfidence  = 0.9
	inlineCodeConfidence = 0.7
	prefixConfidence     = 0.6
)

// maxInlineCommandLength rejects inline code spans that are clearly prose.
const maxInlineCommandLength = 500

// ParsedCommand is a candidate shell command with safety metadata.
// Values are immutable once produced.
type ParsedCommand struct {
	Command     string   `json:"command"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	IsSafe      bool     `json:"is_safe"`
	Warnings    []string `json:"warnings,omitempty"`
}

// dangerousPatterns mark a command categorically unsafe. Evaluated in
// order; the first match wins and halves the candidate's confidence.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/`),          // recursive delete from root
	regexp.MustCompile(`(?i)\bdd\s+if=/dev/`),         // direct disk reads/writes
	regexp.MustCompile(`(?i):\(\)\{\s*:\|:&\s*\};:`),  // fork bomb
	regexp.MustCompile(`(?i)\bmkfs\.`),                // format filesystem
	regexp.MustCompile(`(?i)\bshred\b`),               // secure delete
	regexp.MustCompile(`(?i)>\s*/dev/sd[a-z]`),        // redirect into block device
	regexp.MustCompile(`(?i)\bcurl\s+.*\|\s*bash`),    // network fetch piped to bash
	regexp.MustCompile(`(?i)\bwget\s+.*\|\s*sh`),      // network fetch piped to sh
}

// descriptionRule maps a leading command name to a short human summary.
type descriptionRule struct {
	pattern     *regexp.Regexp
	description string
}

// descriptionRules is evaluated in order; first match wins.
var descriptionRules = []descriptionRule{
	{regexp.MustCompile(`^df\b`), "Check disk space usage"},
	{regexp.MustCompile(`^du\b`), "Check directory space usage"},
	{regexp.MustCompile(`^ls\b`), "List directory contents"},
	{regexp.MustCompile(`^cat\b`), "Display file contents"},
	{regexp.MustCompile(`^grep\b`), "Search for text patterns"},
	{regexp.MustCompile(`^find\b`), "Search for files"},
	{regexp.MustCompile(`^ps\b`), "List running processes"},
	{regexp.MustCompile(`^top\b`), "Monitor system processes"},
	{regexp.MustCompile(`^free\b`), "Check memory usage"},
	{regexp.MustCompile(`^systemctl\s+status`), "Check service status"},
	{regexp.MustCompile(`^journalctl\b`), "View system logs"},
	{regexp.MustCompile(`^tail\b`), "Display end of file"},
	{regexp.MustCompile(`^head\b`), "Display beginning of file"},
	{regexp.MustCompile(`^chmod\b`), "Change file permissions"},
	{regexp.MustCompile(`^chown\b`), "Change file ownership"},
	{regexp.MustCompile(`^mkdir\b`), "Create directory"},
	{regexp.MustCompile(`^rm\b`), "Remove files or directories"},
	{regexp.MustCompile(`^cp\b`), "Copy files"},
	{regexp.MustCompile(`^mv\b`), "Move/rename files"},
}

const fallbackDescription = "Execute shell command"

const (
	dangerWarning      = "Potentially dangerous command detected"
	deletesWarning     = "This command deletes files - review carefully"
	permissionsWarning = "This command modifies permissions"
	privilegesWarning  = "This command requires elevated privileges"
)

// LLMParser implements CommandParser for free-form LLM response text.
type LLMParser struct {
	codeBlockPattern  *regexp.Regexp
	inlineCodePattern *regexp.Regexp
	prefixPattern     *regexp.Regexp
	wordPrefixPattern *regexp.Regexp
}

// NewCommandParser creates a parser for LLM response text.
func NewCommandParser() CommandParser {
	return &LLMParser{
		codeBlockPattern:  regexp.MustCompile("(?s)```(?:bash|sh|shell)?\n(.*?)```"),
		inlineCodePattern: regexp.MustCompile("`([^`\n]+)`"),
		prefixPattern:     regexp.MustCompile(`^\s*[$#]\s*(.+)$`),
		wordPrefixPattern: regexp.MustCompile(`^[a-z_]+\s+`),
	}
}

// ExtractCommands returns all candidate commands found in text, ordered by
// extraction source: fenced code blocks first, then inline code, then
// prompt-prefixed lines. The ordering approximates descending confidence
// but is not a guarantee; use BestCommand for a strict best match.
func (p *LLMParser) ExtractCommands(text string) []ParsedCommand {
	var commands []ParsedCommand

	for _, match := range p.codeBlockPattern.FindAllStringSubmatch(text, -1) {
		for _, line := range strings.Split(strings.TrimSpace(match[1]), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if parsed, ok := parseCommand(line, codeBlockConfidence); ok {
				commands = append(commands, parsed)
			}
		}
	}

	for _, match := range p.inlineCodePattern.FindAllStringSubmatch(text, -1) {
		code := strings.TrimSpace(match[1])
		if !p.looksLikeCommand(code) {
			continue
		}
		if parsed, ok := parseCommand(code, inlineCodeConfidence); ok {
			commands = append(commands, parsed)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		match := p.prefixPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		cmd := strings.TrimSpace(match[1])
		if lo.ContainsBy(commands, func(c ParsedCommand) bool { return c.Command == cmd }) {
			continue
		}
		if parsed, ok := parseCommand(cmd, prefixConfidence); ok {
			commands = append(commands, parsed)
		}
	}

	return commands
}

// BestCommand returns the strongest candidate in text. Safe commands
// always rank above unsafe ones regardless of confidence, because the
// top result is what callers auto-suggest for one-click execution.
func (p *LLMParser) BestCommand(text string) (ParsedCommand, bool) {
	commands := p.ExtractCommands(text)
	if len(commands) == 0 {
		return ParsedCommand{}, false
	}

	sort.SliceStable(commands, func(i, j int) bool {
		if commands[i].IsSafe != commands[j].IsSafe {
			return commands[i].IsSafe
		}
		return commands[i].Confidence > commands[j].Confidence
	})
	return commands[0], true
}

// looksLikeCommand judges whether an inline code span is a shell command
// rather than an identifier or prose fragment.
func (p *LLMParser) looksLikeCommand(text string) bool {
	if len(text) >= maxInlineCommandLength {
		return false
	}

	cleaned := strings.TrimSpace(strings.TrimLeft(text, "$# "))

	knownPrefixes := []string{
		"sudo ", "cd ", "ls ", "cat ", "grep ", "find ", "ps ",
		"df ", "du ", "top", "htop", "systemctl ", "journalctl ",
	}
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			return true
		}
	}

	return strings.HasPrefix(text, "$ ") ||
		strings.HasPrefix(text, "# ") ||
		strings.Contains(text, " | ") ||
		strings.Contains(text, " && ") ||
		p.wordPrefixPattern.MatchString(cleaned)
}

// parseCommand classifies a single candidate string. Returns false when
// the candidate is too short to be a command after prefix stripping.
func parseCommand(command string, confidence float64) (ParsedCommand, bool) {
	command = strings.TrimSpace(command)

	// Strip a single leading shell prompt marker.
	for _, prefix := range []string{"$", "#"} {
		if strings.HasPrefix(command, prefix) {
			command = strings.TrimSpace(command[len(prefix):])
			break
		}
	}

	// The sudo prefix feeds a warning below even though it is stripped
	// from the stored command.
	hasSudo := strings.HasPrefix(command, "sudo ")
	if hasSudo {
		command = strings.TrimSpace(command[len("sudo"):])
	}

	if len(command) < 2 {
		return ParsedCommand{}, false
	}

	isSafe := true
	var warnings []string

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(command) {
			isSafe = false
			warnings = append(warnings, dangerWarning)
			confidence *= 0.5
			break
		}
	}

	// These three checks are independent of the danger patterns and of
	// each other; each can add its own warning.
	if strings.Contains(command, "rm") {
		warnings = append(warnings, deletesWarning)
	}
	if strings.Contains(command, "chmod") || strings.Contains(command, "chown") {
		warnings = append(warnings, permissionsWarning)
	}
	if hasSudo {
		warnings = append(warnings, privilegesWarning)
	}

	return ParsedCommand{
		Command:     command,
		Description: describe(command),
		Confidence:  confidence,
		IsSafe:      isSafe,
		Warnings:    warnings,
	}, true
}

func describe(command string) string {
	for _, rule := range descriptionRules {
		if rule.pattern.MatchString(command) {
			return rule.description
		}
	}
	return fallbackDescription
}
