package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shellmedic/shellmedic/internal/app"
	"github.com/shellmedic/shellmedic/internal/config"
	"github.com/shellmedic/shellmedic/internal/parser"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Extract and classify command candidates from assistant text",
	Long: `Reads assistant text from stdin (or --input) and prints every command
candidate it contains, ranked by safety and confidence, with danger warnings
and confirmation requirements. Nothing is executed.`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

// readAssistantText reads the text to analyze from the configured input.
func readAssistantText(cfg *config.Config) (string, error) {
	var r io.Reader = os.Stdin
	if cfg.InputFile != "" {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			return "", fmt.Errorf("cannot read input file: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(data), nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	a, err := bootstrapApp(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer a.Close()

	text, err := readAssistantText(cfg)
	if err != nil {
		return err
	}

	commands := a.Suggest(text)

	if cfg.JSONOutput {
		return printJSON(commands)
	}
	printCandidates(a, commands)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCandidates(a *app.App, commands []parser.ParsedCommand) {
	if len(commands) == 0 {
		fmt.Println("No commands found.")
		return
	}

	fmt.Printf("Found %d command candidate(s):\n\n", len(commands))
	for i, c := range commands {
		marker := "safe"
		if !c.IsSafe {
			marker = "DANGEROUS"
		}
		fmt.Printf("%d. %s\n", i+1, c.Command)
		fmt.Printf("   %s [%s, confidence %.2f]\n", c.Description, marker, c.Confidence)
		for _, w := range c.Warnings {
			fmt.Printf("   warning: %s\n", w)
		}
		if needs, reason := a.RequiresConfirmation(c.Command); needs {
			fmt.Printf("   confirmation required: %s\n", reason)
		}
		if i < len(commands)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
}
