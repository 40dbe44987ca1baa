// Package app wires the assistant core together: configuration, the
// command parser, the execution gate, history context, and the audit
// session.
package app

import (
	"go.uber.org/zap"

	"github.com/shellmedic/shellmedic/internal/config"
	apperrors "github.com/shellmedic/shellmedic/internal/errors"
	"github.com/shellmedic/shellmedic/internal/executor"
	"github.com/shellmedic/shellmedic/internal/history"
	"github.com/shellmedic/shellmedic/internal/infrastructure"
	"github.com/shellmedic/shellmedic/internal/parser"
	"github.com/shellmedic/shellmedic/internal/session"
)

// App represents the main application
type App struct {
	config      *config.Config
	logger      *zap.Logger
	parser      parser.CommandParser
	gate        *executor.Executor
	interactive *executor.InteractiveExecutor
	history     *history.Reader
	store       infrastructure.AuditStore
	session     *session.Session
}

// Close releases the audit store and flushes buffered log entries.
func (a *App) Close() error {
	if a.logger != nil {
		// Sync failures on stderr are expected on some platforms.
		_ = a.logger.Sync()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Suggest extracts all command candidates from a block of assistant text.
func (a *App) Suggest(text string) []parser.ParsedCommand {
	commands := a.parser.ExtractCommands(text)
	a.logger.Debug("extracted command candidates", zap.Int("count", len(commands)))
	return commands
}

// Best picks the single most trustworthy candidate from assistant text.
// It returns ErrNoCommandFound when the text contains no recognizable
// command.
func (a *App) Best(text string) (parser.ParsedCommand, error) {
	cmd, ok := a.parser.BestCommand(text)
	if !ok {
		return parser.ParsedCommand{}, apperrors.ErrNoCommandFound
	}
	return cmd, nil
}

// Preflight checks that a command could run at all, before any
// confirmation prompt is shown.
func (a *App) Preflight(command string) error {
	ok, reason := a.gate.CanExecute(command)
	if !ok {
		return &apperrors.GateError{
			Command: command,
			Reason:  reason,
			Err:     apperrors.ErrCommandRejected,
		}
	}
	return nil
}

// RequiresConfirmation reports whether the command needs explicit user
// approval, and the reason shown to the user.
func (a *App) RequiresConfirmation(command string) (bool, string) {
	return a.interactive.RequiresConfirmation(command)
}

// Run sends a command through the gate and records the decision in the
// audit trail. confirmed is the user's answer to the confirmation
// prompt; it is ignored for commands that never needed one.
func (a *App) Run(command string, confirmed bool) executor.ExecutionResult {
	result := a.interactive.ExecuteWithConfirmation(command, confirmed)
	a.session.RecordResult(result, a.config.DryRun)
	return result
}

// HistoryContext reads recent shell history, already redacted, and
// formats it as context for an assistant prompt.
func (a *App) HistoryContext(count int) string {
	entries := a.history.Recent(count)
	return history.FormatContext(entries)
}

// RecentHistory returns redacted history entries, most recent first.
func (a *App) RecentHistory(count int) []string {
	return a.history.Recent(count)
}

// AuditEvents returns the most recent audit trail entries. sessionID
// may be empty to query across sessions.
func (a *App) AuditEvents(sessionID string, limit int) ([]infrastructure.AuditEvent, error) {
	if a.store == nil {
		return nil, &apperrors.AuditError{
			Path: a.config.AuditDBPath,
			Err:  apperrors.ErrAuditFailed,
		}
	}
	return a.store.RecentEvents(sessionID, limit)
}

// Session returns the app's session
func (a *App) Session() *session.Session {
	return a.session
}

// Config returns the app's configuration
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the app's logger
func (a *App) Logger() *zap.Logger {
	return a.logger
}
