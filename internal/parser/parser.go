package parser

// CommandParser extracts and classifies candidate shell commands from
// free-form text such as an LLM response.
type CommandParser interface {
	ExtractCommands(text string) []ParsedCommand
	BestCommand(text string) (ParsedCommand, bool)
}
