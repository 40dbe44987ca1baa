package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellmedic/shellmedic/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent shell history with secrets redacted",
	Long: `Reads the current user's shell history file (zsh or bash), redacts
sensitive data, and prints the most recent entries formatted as context
for an assistant prompt.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	a, err := bootstrapApp(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer a.Close()

	if cfg.JSONOutput {
		return printJSON(a.RecentHistory(cfg.HistoryCount))
	}

	entries := a.RecentHistory(cfg.HistoryCount)
	if len(entries) == 0 {
		fmt.Println("No shell history available.")
		return nil
	}
	fmt.Println(history.FormatContext(entries))
	return nil
}
