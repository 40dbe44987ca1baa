package executor

import (
	"fmt"

	"github.com/shellmedic/shellmedic/internal/security"
)

// Gate is the execution primitive InteractiveExecutor delegates to once a
// command has cleared confirmation.
type Gate interface {
	Execute(command string) ExecutionResult
}

// InteractiveExecutor wraps a Gate with the confirmation tier: commands
// matching the confirmation rules run only after explicit human approval.
type InteractiveExecutor struct {
	gate Gate
}

// NewInteractiveExecutor wraps gate with confirmation handling.
func NewInteractiveExecutor(gate Gate) *InteractiveExecutor {
	return &InteractiveExecutor{gate: gate}
}

// RequiresConfirmation reports whether command needs human approval
// before execution, with the reason to show the user.
func (i *InteractiveExecutor) RequiresConfirmation(command string) (bool, string) {
	return security.RequiresConfirmation(command)
}

// ExecuteWithConfirmation runs command unless it requires confirmation
// that was not given. In that case the command is never spawned and the
// result explains what approval was needed.
func (i *InteractiveExecutor) ExecuteWithConfirmation(command string, confirmed bool) ExecutionResult {
	required, reason := security.RequiresConfirmation(command)
	if required && !confirmed {
		return ExecutionResult{
			Command:      command,
			ExitCode:     -1,
			Success:      false,
			ErrorMessage: fmt.Sprintf("%s %s", ConfirmationMessagePrefix, reason),
		}
	}
	return i.gate.Execute(command)
}
