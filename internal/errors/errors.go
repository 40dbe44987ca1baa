package errors

import "fmt"

// Error types for the application
var (
	ErrNoCommandFound  = fmt.Errorf("NO_COMMAND_FOUND")
	ErrCommandRejected = fmt.Errorf("COMMAND_REJECTED")
	ErrCommandDenied   = fmt.Errorf("COMMAND_DENIED")
	ErrAuditFailed     = fmt.Errorf("AUDIT_FAILED")
	ErrHistoryRead     = fmt.Errorf("HISTORY_READ")
)

// GateError wraps errors raised before a command reaches the shell
type GateError struct {
	Command string
	Reason  string
	Err     error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("gate refused command %q: %s: %v", e.Command, e.Reason, e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// AuditError wraps audit trail persistence errors
type AuditError struct {
	Path string
	Err  error
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("audit trail at %s: %v", e.Path, e.Err)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}
