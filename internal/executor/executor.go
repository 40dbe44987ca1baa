// Package executor runs approved shell commands with a hard timeout and
// normalized result reporting. A spawned command always ends in one of
// four distinct outcomes: completed (any exit code), timed out, failed to
// spawn, or denied pending confirmation -- and a process is never left
// running past its deadline.
package executor

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"
)

// killGracePeriod is how long the gate waits after the graceful
// termination signal before force-killing the process group.
const killGracePeriod = 5 * time.Second

// DefaultTimeout bounds command execution when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// DefaultMaxOutputBytes caps captured output per stream before it is
// replaced with the too-long marker.
const DefaultMaxOutputBytes = 50_000

// outputTooLongMarker replaces oversized captured output so a downstream
// LLM context window is never flooded.
const outputTooLongMarker = "Output too long. Command output exceeds limit. " +
	"Use a different method (e.g. filtering, paging, or summary)."

// Error-message prefixes distinguishing the not-run-to-completion
// outcomes. Callers classifying results match on these rather than on
// free text.
const (
	TimeoutMessagePrefix      = "Command timed out after"
	SpawnErrorMessagePrefix   = "Execution error:"
	ConfirmationMessagePrefix = "Confirmation required:"
)

// ExecutionResult is the normalized outcome of one execution attempt.
// ExitCode -1 is reserved for "did not run to completion": timeout, spawn
// failure, or denied confirmation. Success implies ExitCode zero implies
// an empty ErrorMessage.
type ExecutionResult struct {
	Command      string `json:"command"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
	ExitCode     int    `json:"exit_code"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Executor spawns shell commands in their own process group so a timeout
// can terminate the whole subtree, not just the direct child.
type Executor struct {
	timeout        time.Duration
	dryRun         bool
	maxOutputBytes int
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout sets the wall-clock execution bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithDryRun makes Execute return synthetic success results without
// spawning anything.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) { e.dryRun = dryRun }
}

// WithMaxOutputBytes caps captured stdout/stderr size per stream.
func WithMaxOutputBytes(n int) Option {
	return func(e *Executor) { e.maxOutputBytes = n }
}

// NewExecutor creates a command executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		timeout:        DefaultTimeout,
		maxOutputBytes: DefaultMaxOutputBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the configured execution bound.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Execute runs command through the shell and returns a normalized result.
// It never panics and never returns an error: timeouts and spawn failures
// are reported through the result value.
func (e *Executor) Execute(command string) ExecutionResult {
	if e.dryRun {
		return ExecutionResult{
			Command:  command,
			Stdout:   "[DRY RUN] Command not executed",
			ExitCode: 0,
			Success:  true,
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return ExecutionResult{
			Command:      command,
			ExitCode:     -1,
			Success:      false,
			ErrorMessage: fmt.Sprintf("%s %v", SpawnErrorMessagePrefix, err),
		}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return e.completedResult(command, &stdout, &stderr, err)

	case <-timer.C:
		// Graceful first: the command may have spawned children that only
		// a process-group signal reaches. Force-kill if the group ignores
		// the termination signal.
		terminateProcessGroup(cmd)
		select {
		case <-done:
		case <-time.After(killGracePeriod):
			killProcessGroup(cmd)
			<-done
		}
		return ExecutionResult{
			Command:      command,
			Stdout:       e.capOutput(&stdout),
			Stderr:       e.capOutput(&stderr),
			ExitCode:     -1,
			Success:      false,
			ErrorMessage: fmt.Sprintf("%s %v", TimeoutMessagePrefix, e.timeout),
		}
	}
}

// completedResult normalizes a finished process. A non-zero exit is a
// normal application-level failure, not an execution error, so it carries
// no error message.
func (e *Executor) completedResult(command string, stdout, stderr *bytes.Buffer, waitErr error) ExecutionResult {
	exitCode := 0
	if waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			return ExecutionResult{
				Command:      command,
				Stdout:       e.capOutput(stdout),
				Stderr:       e.capOutput(stderr),
				ExitCode:     -1,
				Success:      false,
				ErrorMessage: fmt.Sprintf("%s %v", SpawnErrorMessagePrefix, waitErr),
			}
		}
		exitCode = exitErr.ExitCode()
	}

	return ExecutionResult{
		Command:  command,
		Stdout:   e.capOutput(stdout),
		Stderr:   e.capOutput(stderr),
		ExitCode: exitCode,
		Success:  exitCode == 0,
	}
}

// capOutput trims surrounding whitespace and replaces oversized output
// with the too-long marker.
func (e *Executor) capOutput(buf *bytes.Buffer) string {
	out := strings.TrimSpace(buf.String())
	if e.maxOutputBytes > 0 && len(out) > e.maxOutputBytes {
		return outputTooLongMarker
	}
	return out
}

// CanExecute is a pre-flight check: it answers "does this binary exist",
// not "is this dangerous". The reason is non-empty iff the command cannot
// run.
func (e *Executor) CanExecute(command string) (bool, string) {
	if strings.TrimSpace(command) == "" {
		return false, "Empty command"
	}

	fields, err := shell.Fields(command, nil)
	if err != nil || len(fields) == 0 {
		return false, "Invalid command format"
	}

	base := fields[0]
	if base == "sudo" && len(fields) > 1 {
		base = fields[1]
	}

	if _, err := exec.LookPath(base); err != nil {
		return false, fmt.Sprintf("Command '%s' not found", base)
	}

	return true, ""
}
