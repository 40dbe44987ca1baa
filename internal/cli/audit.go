package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit trail entries",
	Long: `Prints the most recent gate decisions from the audit database: what ran,
what was denied, timeouts, and dry runs. Commands were redacted before they
were persisted.`,
	RunE: runAudit,
}

var auditSession string

func init() {
	auditCmd.Flags().StringVar(&auditSession, "session", "", "Filter by session id")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	a, err := bootstrapApp(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer a.Close()

	events, err := a.AuditEvents(auditSession, cfg.HistoryCount)
	if err != nil {
		return fmt.Errorf("cannot read audit trail: %w", err)
	}

	if cfg.JSONOutput {
		return printJSON(events)
	}

	if len(events) == 0 {
		fmt.Println("Audit trail is empty.")
		return nil
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  [%s]  %s  (exit %d)",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Outcome, e.Command, e.ExitCode)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Println(line)
	}
	return nil
}
