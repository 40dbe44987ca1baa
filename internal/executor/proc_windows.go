//go:build windows

package executor

import "os/exec"

// Windows has no process groups in the POSIX sense. The fallback signals
// only the direct child, so grandchild processes may survive a timeout.
// This reduced guarantee is a known limitation of the platform.

func setProcessGroup(cmd *exec.Cmd) {}

func terminateProcessGroup(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
