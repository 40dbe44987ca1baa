package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shellmedic/shellmedic/internal/config"
	apperrors "github.com/shellmedic/shellmedic/internal/errors"
	"github.com/shellmedic/shellmedic/internal/executor"
	"github.com/shellmedic/shellmedic/internal/history"
	"github.com/shellmedic/shellmedic/internal/infrastructure"
	"github.com/shellmedic/shellmedic/internal/parser"
	"github.com/shellmedic/shellmedic/internal/session"
)

// Bootstrap initializes and returns a configured App
func Bootstrap(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := buildLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("cannot build logger: %w", err)
	}

	// Audit persistence is best effort. A read-only filesystem must not
	// stop the assistant from suggesting commands.
	var store infrastructure.AuditStore
	if cfg.AuditDBPath != "" {
		s, err := infrastructure.OpenAuditStore(cfg.AuditDBPath)
		if err != nil {
			auditErr := &apperrors.AuditError{Path: cfg.AuditDBPath, Err: err}
			logger.Warn("audit store unavailable, decisions will not be persisted",
				zap.Error(auditErr))
		} else {
			store = s
		}
	}

	gate := executor.NewExecutor(
		executor.WithTimeout(cfg.Timeout),
		executor.WithDryRun(cfg.DryRun),
		executor.WithMaxOutputBytes(cfg.MaxOutputBytes),
	)

	return &App{
		config:      cfg,
		logger:      logger,
		parser:      parser.NewCommandParser(),
		gate:        gate,
		interactive: executor.NewInteractiveExecutor(gate),
		history:     history.NewReader(),
		store:       store,
		session:     session.New(store, logger),
	}, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	// Stdout carries command results; logs go to stderr only.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
