// Package config holds the runtime configuration for the assistant core.
package config

import (
	"fmt"
	"time"

	"github.com/shellmedic/shellmedic/internal/executor"
	"github.com/shellmedic/shellmedic/internal/history"
)

// Config is the complete application configuration.
type Config struct {
	// Execution gate.
	Timeout        time.Duration
	DryRun         bool
	MaxOutputBytes int

	// History context.
	HistoryCount int

	// Audit trail.
	AuditDBPath string

	// CLI behavior.
	InputFile  string
	JSONOutput bool
	Verbose    bool
	AssumeYes  bool
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Timeout:        executor.DefaultTimeout,
		MaxOutputBytes: executor.DefaultMaxOutputBytes,
		HistoryCount:   history.DefaultCount,
		AuditDBPath:    "audit.db",
	}
}

// Validate rejects configurations the core cannot honor.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.HistoryCount < 0 {
		return fmt.Errorf("history count cannot be negative, got %d", c.HistoryCount)
	}
	if c.MaxOutputBytes < 0 {
		return fmt.Errorf("max output bytes cannot be negative, got %d", c.MaxOutputBytes)
	}
	return nil
}
