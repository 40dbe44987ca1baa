package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 50_000, cfg.MaxOutputBytes)
	assert.Equal(t, 10, cfg.HistoryCount)
	assert.Equal(t, "audit.db", cfg.AuditDBPath)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.AssumeYes)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "negative history count",
			mutate:  func(c *Config) { c.HistoryCount = -1 },
			wantErr: "history count cannot be negative",
		},
		{
			name:    "negative max output",
			mutate:  func(c *Config) { c.MaxOutputBytes = -100 },
			wantErr: "max output bytes cannot be negative",
		},
		{
			name:   "zero max output allowed",
			mutate: func(c *Config) { c.MaxOutputBytes = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
