package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shellmedic/shellmedic/internal/app"
	apperrors "github.com/shellmedic/shellmedic/internal/errors"
	"github.com/shellmedic/shellmedic/internal/executor"
	"github.com/shellmedic/shellmedic/internal/security"
)

var runCmd = &cobra.Command{
	Use:   "run [command...]",
	Short: "Run a command through the safety gate",
	Long: `Runs a command after safety classification. With arguments, the arguments
form the command. Without arguments, assistant text is read from stdin (or
--input) and the best extracted candidate is run. Dangerous commands require
confirmation unless --yes is set.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	a, err := bootstrapApp(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer a.Close()

	command, err := resolveCommand(a, args)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCommandFound) {
			return fmt.Errorf("no runnable command found in input")
		}
		return err
	}

	if err := a.Preflight(command); err != nil {
		var gateErr *apperrors.GateError
		if errors.As(err, &gateErr) {
			return fmt.Errorf("%s", gateErr.Reason)
		}
		return err
	}

	confirmed := cfg.AssumeYes
	if needs, reason := a.RequiresConfirmation(command); needs && !confirmed {
		confirmed, err = promptConfirm(command, reason)
		if err != nil {
			return err
		}
	}

	result := a.Run(command, confirmed)
	printResult(result, cfg.JSONOutput)

	if !result.Success {
		// The result has already been shown; signal failure to the shell.
		return fmt.Errorf("command failed with exit code %d", result.ExitCode)
	}
	return nil
}

// resolveCommand picks the command to run: explicit arguments win,
// otherwise the best candidate extracted from assistant text.
func resolveCommand(a *app.App, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	text, err := readAssistantText(a.Config())
	if err != nil {
		return "", err
	}

	best, err := a.Best(text)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(os.Stderr, "Selected: %s (%s)\n", best.Command, best.Description)
	for _, w := range best.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return best.Command, nil
}

func promptConfirm(command, reason string) (bool, error) {
	fmt.Fprintf(os.Stderr, "%s\n", reason)
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "Run command: %s? [y/N]: ", command)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, nil
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "" || answer == "n" || answer == "no" {
			return false, nil
		}
		if answer == "y" || answer == "yes" {
			return true, nil
		}
	}
}

// printResult shows an execution result. Captured output is redacted
// before display so secrets echoed by a command never reach the
// assistant transcript.
func printResult(result executor.ExecutionResult, jsonOutput bool) {
	result.Stdout = security.FilterSensitiveData(result.Stdout)
	result.Stderr = security.FilterSensitiveData(result.Stderr)

	if jsonOutput {
		_ = printJSON(result)
		return
	}

	if result.Stdout != "" {
		fmt.Println(result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(os.Stderr, result.Stderr)
	}
	if result.ErrorMessage != "" {
		fmt.Fprintln(os.Stderr, result.ErrorMessage)
	}
}
