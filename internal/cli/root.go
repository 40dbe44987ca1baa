// Package cli implements the shellmedic command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "shellmedic",
	Short: "Command safety gate for AI troubleshooting assistants",
	Long: `shellmedic sits between an AI troubleshooting assistant and your shell.
It extracts command suggestions from assistant text, classifies how dangerous
they are, redacts secrets from anything that leaves the machine, and requires
explicit confirmation before destructive commands run.`,
	RunE:          runSuggest,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Gate flags
	rootCmd.PersistentFlags().String("timeout", "30s", "Timeout for command execution")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Show what would run without executing")
	rootCmd.PersistentFlags().Int("max-output", 50_000, "Maximum captured output per stream in bytes")
	rootCmd.PersistentFlags().Bool("yes", false, "Assume yes for confirmation prompts")

	// Context flags
	rootCmd.PersistentFlags().Int("count", 10, "Number of shell history entries to read")

	// Audit flags
	rootCmd.PersistentFlags().String("audit-db", defaultAuditPath(), "Path to the audit trail database")

	// I/O flags
	rootCmd.PersistentFlags().String("input", "", "Read assistant text from file (default: stdin)")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")

	// Bind flags to viper
	viper.BindPFlags(rootCmd.PersistentFlags())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set default config file name
	viper.SetConfigName("shellmedic.config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Enable environment variables with SHELLMEDIC prefix
	viper.SetEnvPrefix("SHELLMEDIC")
	viper.AutomaticEnv()
}

func initConfig() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			fmt.Printf("Error reading config file: %v\n", err)
		}
		// Config file not found; using defaults and flags
	}
}
