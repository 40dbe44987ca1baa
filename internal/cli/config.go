package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/shellmedic/shellmedic/internal/app"
	"github.com/shellmedic/shellmedic/internal/config"
)

// buildConfig constructs a config.Config from Viper values
func buildConfig() (*config.Config, error) {
	cfg := config.Default()

	cfg.DryRun = viper.GetBool("dry-run")
	cfg.MaxOutputBytes = viper.GetInt("max-output")
	cfg.AssumeYes = viper.GetBool("yes")
	cfg.HistoryCount = viper.GetInt("count")
	cfg.AuditDBPath = viper.GetString("audit-db")
	cfg.InputFile = viper.GetString("input")
	cfg.JSONOutput = viper.GetBool("json")
	cfg.Verbose = viper.GetBool("verbose")

	timeoutStr := viper.GetString("timeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}
	cfg.Timeout = timeout

	return cfg, nil
}

// bootstrapApp wraps the app.Bootstrap function
func bootstrapApp(cfg *config.Config) (*app.App, error) {
	return app.Bootstrap(cfg)
}

// defaultAuditPath keeps the audit trail under the user's home directory
// so every invocation appends to the same trail.
func defaultAuditPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "audit.db"
	}
	return filepath.Join(home, ".shellmedic", "audit.db")
}
