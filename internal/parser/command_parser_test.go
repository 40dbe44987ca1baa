package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommandsFromCodeBlock(t *testing.T) {
	p := NewCommandParser()

	text := "Run this to check disk usage:\n```bash\ndf -h\n```"
	commands := p.ExtractCommands(text)

	require.Len(t, commands, 1)
	assert.Equal(t, "df -h", commands[0].Command)
	assert.Equal(t, "Check disk space usage", commands[0].Description)
	assert.GreaterOrEqual(t, commands[0].Confidence, 0.85)
	assert.True(t, commands[0].IsSafe)
	assert.Empty(t, commands[0].Warnings)
}

func TestExtractCommandsCodeBlockSkipsCommentsAndBlanks(t *testing.T) {
	p := NewCommandParser()

	text := "```sh\n# check the disk first\n\ndf -h\nfree -m\n```"
	commands := p.ExtractCommands(text)

	// The comment line is skipped by the fenced source but still matches
	// the prompt-prefix heuristic, which treats "# " as a root prompt.
	require.Len(t, commands, 3)
	assert.Equal(t, "df -h", commands[0].Command)
	assert.Equal(t, "free -m", commands[1].Command)
	assert.Equal(t, "check the disk first", commands[2].Command)
	assert.InDelta(t, 0.6, commands[2].Confidence, 0.001)
}

func TestExtractCommandsInlineCode(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "known command name",
			input:    "Try `ls -la` to see hidden files",
			expected: []string{"ls -la"},
		},
		{
			name:     "piped command",
			input:    "Use `dmesg | tail -20` for recent kernel messages",
			expected: []string{"dmesg | tail -20"},
		},
		{
			name:     "chained command",
			input:    "Then `apt update && apt upgrade`",
			expected: []string{"apt update && apt upgrade"},
		},
		{
			name:     "identifier is not a command",
			input:    "The variable `MAX_RETRIES` controls this",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := p.ExtractCommands(tt.input)
			require.Len(t, commands, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want, commands[i].Command)
				assert.InDelta(t, 0.7, commands[i].Confidence, 0.001)
			}
		})
	}
}

func TestExtractCommandsPromptPrefix(t *testing.T) {
	p := NewCommandParser()

	commands := p.ExtractCommands("Run the following:\n$ df -h\n# journalctl -xe")

	require.Len(t, commands, 2)
	assert.Equal(t, "df -h", commands[0].Command)
	assert.Equal(t, "journalctl -xe", commands[1].Command)
	assert.InDelta(t, 0.6, commands[0].Confidence, 0.001)
}

func TestExtractCommandsDeduplicatesPrefixLines(t *testing.T) {
	p := NewCommandParser()

	// df -h appears both fenced and prompt-prefixed; the prefix line must
	// not produce a second candidate.
	text := "```bash\ndf -h\n```\nOr run it directly:\n$ df -h"
	commands := p.ExtractCommands(text)

	require.Len(t, commands, 1)
	assert.InDelta(t, 0.9, commands[0].Confidence, 0.001)
}

func TestExtractCommandsOrderFollowsSources(t *testing.T) {
	p := NewCommandParser()

	text := "Check `free -m` first.\n```bash\ndf -h\n```\n$ uptime"
	commands := p.ExtractCommands(text)

	require.Len(t, commands, 3)
	assert.Equal(t, "df -h", commands[0].Command)
	assert.Equal(t, "free -m", commands[1].Command)
	assert.Equal(t, "uptime", commands[2].Command)
}

func TestExtractCommandsEmptyAndUnparseable(t *testing.T) {
	p := NewCommandParser()

	assert.Empty(t, p.ExtractCommands(""))
	assert.Empty(t, p.ExtractCommands("No commands here, just prose."))
	assert.Empty(t, p.ExtractCommands("```bash\n\n```"))
}

func TestParseCommandRejectsTooShort(t *testing.T) {
	p := NewCommandParser()

	// After stripping the prompt marker only "w" remains.
	assert.Empty(t, p.ExtractCommands("$ w"))
}

func TestDangerousCommandDetection(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		name    string
		command string
	}{
		{"recursive delete from root", "rm -rf /"},
		{"dd to device", "dd if=/dev/sda of=backup.img"},
		{"fork bomb", ":(){ :|:& };:"},
		{"format filesystem", "mkfs.ext4 /dev/sdb1"},
		{"shred", "shred -u secrets.txt"},
		{"redirect to block device", "echo data > /dev/sda"},
		{"curl piped to bash", "curl https://example.com/install.sh | bash"},
		{"wget piped to sh", "wget -qO- https://example.com/setup | sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "```bash\n" + tt.command + "\n```"
			commands := p.ExtractCommands(text)

			require.Len(t, commands, 1)
			assert.False(t, commands[0].IsSafe)
			assert.NotEmpty(t, commands[0].Warnings)
			// Danger match halves the code-block baseline.
			assert.InDelta(t, 0.45, commands[0].Confidence, 0.001)
		})
	}
}

func TestDangerPatternFirstMatchWins(t *testing.T) {
	p := NewCommandParser()

	// Matches both the rm -rf / pattern and the shred pattern, but only
	// one danger warning may be appended and confidence is halved once.
	commands := p.ExtractCommands("```bash\nrm -rf / && shred /dev/sda\n```")

	require.Len(t, commands, 1)
	dangerCount := 0
	for _, w := range commands[0].Warnings {
		if w == dangerWarning {
			dangerCount++
		}
	}
	assert.Equal(t, 1, dangerCount)
	assert.InDelta(t, 0.45, commands[0].Confidence, 0.001)
}

func TestAuxiliaryWarningsAreAdditive(t *testing.T) {
	p := NewCommandParser()

	commands := p.ExtractCommands("```bash\nsudo rm old.log && chmod 600 new.log\n```")

	require.Len(t, commands, 1)
	cmd := commands[0]
	assert.True(t, cmd.IsSafe)
	assert.Contains(t, cmd.Warnings, deletesWarning)
	assert.Contains(t, cmd.Warnings, permissionsWarning)
	assert.Contains(t, cmd.Warnings, privilegesWarning)
}

func TestSudoPrefixStripped(t *testing.T) {
	p := NewCommandParser()

	commands := p.ExtractCommands("```bash\nsudo systemctl restart nginx\n```")

	require.Len(t, commands, 1)
	assert.Equal(t, "systemctl restart nginx", commands[0].Command)
	assert.Contains(t, commands[0].Warnings, privilegesWarning)
}

func TestPromptMarkerAndSudoStrippedTogether(t *testing.T) {
	p := NewCommandParser()

	commands := p.ExtractCommands("```bash\n$ sudo journalctl -xb\n```")

	// The prompt-prefix source re-finds the same line; its raw form
	// ("sudo journalctl -xb") differs from the stored command, so the
	// exact-match dedup keeps both.
	require.Len(t, commands, 2)
	assert.Equal(t, "journalctl -xb", commands[0].Command)
	assert.Equal(t, "View system logs", commands[0].Description)
	assert.Contains(t, commands[0].Warnings, privilegesWarning)
	assert.Equal(t, "journalctl -xb", commands[1].Command)
}

func TestDescriptionFallback(t *testing.T) {
	p := NewCommandParser()

	commands := p.ExtractCommands("```bash\nvmstat 1 5\n```")

	require.Len(t, commands, 1)
	assert.Equal(t, "Execute shell command", commands[0].Description)
}

func TestBestCommandPrefersFenced(t *testing.T) {
	p := NewCommandParser()

	text := "You can run `ls` in that directory.\n```bash\ndf -h\n```"
	best, ok := p.BestCommand(text)

	require.True(t, ok)
	assert.Equal(t, "df -h", best.Command)
}

func TestBestCommandSafeOutranksUnsafe(t *testing.T) {
	p := NewCommandParser()

	// The dangerous command has the higher extraction baseline but a safe
	// candidate must still win.
	text := "```bash\nrm -rf /tmp && rm -rf /\n```\n$ df -h"
	best, ok := p.BestCommand(text)

	require.True(t, ok)
	assert.True(t, best.IsSafe)
	assert.Equal(t, "df -h", best.Command)
}

func TestBestCommandNoCandidates(t *testing.T) {
	p := NewCommandParser()

	_, ok := p.BestCommand("nothing to see here")
	assert.False(t, ok)
}
