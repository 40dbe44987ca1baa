// Package session tracks one assistant run: a session id, counters, and
// the audit trail of every gate decision made during the run.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shellmedic/shellmedic/internal/executor"
	"github.com/shellmedic/shellmedic/internal/infrastructure"
	"github.com/shellmedic/shellmedic/internal/security"
)

// Outcomes recorded in the audit trail. Denied means the confirmation
// tier stopped the command before it was ever spawned.
const (
	OutcomeExecuted = "executed"
	OutcomeDenied   = "denied"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
	OutcomeDryRun   = "dry_run"
)

// Session holds runtime state for one assistant run.
type Session struct {
	ID        string
	StartTime time.Time

	store  infrastructure.AuditStore
	logger *zap.Logger

	mu          sync.Mutex
	commandsRun int
}

// New creates a session. The store may be nil, in which case decisions
// are only logged, not persisted.
func New(store infrastructure.AuditStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		StartTime: time.Now(),
		store:     store,
		logger:    logger,
	}
}

// RecordResult classifies an execution result and writes it to the audit
// trail. Commands are redacted before persistence so the audit database
// never stores secrets.
func (s *Session) RecordResult(result executor.ExecutionResult, dryRun bool) {
	outcome := classifyOutcome(result, dryRun)
	s.record(result.Command, outcome, result.ExitCode, result.ErrorMessage)

	if outcome == OutcomeExecuted {
		s.mu.Lock()
		s.commandsRun++
		s.mu.Unlock()
	}
}

// CommandsRun reports how many commands actually executed this session.
func (s *Session) CommandsRun() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commandsRun
}

func (s *Session) record(command, outcome string, exitCode int, detail string) {
	redacted := security.FilterSensitiveData(command)

	s.logger.Info("gate decision",
		zap.String("session_id", s.ID),
		zap.String("command", redacted),
		zap.String("outcome", outcome),
		zap.Int("exit_code", exitCode),
	)

	if s.store == nil {
		return
	}
	if err := s.store.LogEvent(s.ID, redacted, outcome, exitCode, detail); err != nil {
		s.logger.Warn("failed to persist audit event", zap.Error(err))
	}
}

func classifyOutcome(result executor.ExecutionResult, dryRun bool) string {
	switch {
	case dryRun:
		return OutcomeDryRun
	case result.ErrorMessage == "":
		// Ran to completion; non-zero exit is still "executed".
		return OutcomeExecuted
	case strings.HasPrefix(result.ErrorMessage, executor.ConfirmationMessagePrefix):
		return OutcomeDenied
	case strings.HasPrefix(result.ErrorMessage, executor.TimeoutMessagePrefix):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}
