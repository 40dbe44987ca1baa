// Package history reads recent shell history and prepares it for use as
// LLM context. Every line is scrubbed through the sensitive-data redactor
// before it leaves this package.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/shellmedic/shellmedic/internal/security"
)

// DefaultCount is how many history entries are read when the caller does
// not say otherwise.
const DefaultCount = 10

// Reader locates and reads the current user's shell history file.
type Reader struct {
	// Home and Shell default to the current environment; tests override
	// them to point at fixtures.
	Home  string
	Shell string
}

// NewReader creates a Reader for the current user and shell.
func NewReader() *Reader {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &Reader{
		Home:  home,
		Shell: os.Getenv("SHELL"),
	}
}

// HistoryPath returns the path of the shell history file, preferring the
// file matching $SHELL and falling back to whichever common history file
// exists. Empty when none is found.
func (r *Reader) HistoryPath() string {
	if r.Home == "" {
		return ""
	}

	zshHistory := filepath.Join(r.Home, ".zsh_history")
	bashHistory := filepath.Join(r.Home, ".bash_history")

	var candidates []string
	switch {
	case strings.Contains(r.Shell, "zsh"):
		candidates = []string{zshHistory, bashHistory}
	case strings.Contains(r.Shell, "bash"):
		candidates = []string{bashHistory, zshHistory}
	default:
		candidates = []string{zshHistory, bashHistory}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Recent returns up to count history entries, most recent first, with
// zsh extended-history timestamps stripped and secrets redacted. Missing
// or unreadable history yields an empty slice, never an error the caller
// has to handle.
func (r *Reader) Recent(count int) []string {
	if count <= 0 {
		count = DefaultCount
	}

	path := r.HistoryPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// History files can contain binary garbage; drop invalid sequences
	// instead of failing.
	text := strings.TrimRight(strings.ToValidUTF8(string(data), ""), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[len(lines)-count:]
	}

	var entries []string
	for _, line := range lines {
		line = normalizeEntry(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		entries = append(entries, security.FilterSensitiveData(line))
	}

	if len(entries) > count {
		entries = entries[len(entries)-count:]
	}
	return lo.Reverse(entries)
}

// normalizeEntry strips the zsh extended-history envelope. The format is
// ": <timestamp>:<flags>;<command>"; only the command segment after the
// first semicolon is the actual entry.
func normalizeEntry(line string) string {
	if strings.HasPrefix(line, ":") && strings.Contains(line, ";") {
		if _, command, found := strings.Cut(line, ";"); found {
			return command
		}
	}
	return line
}

// FormatContext renders entries as a numbered context block for an LLM
// prompt. Empty input produces an empty string.
func FormatContext(entries []string) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Recent shell history (most recent first):")
	for i, entry := range entries {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, entry))
	}
	return b.String()
}
