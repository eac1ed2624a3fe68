//go:build !windows

package process

import (
	"os"
	"syscall"
)

func exitStatus(state *os.ProcessState) (status int, signaled bool) {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return StatusSignalBase + int(ws.Signal()), true
	}
	return state.ExitCode(), false
}

func sysProcAttr(background bool) *syscall.SysProcAttr {
	if !background {
		return nil
	}
	// A separate process group keeps terminal interrupts away from the job.
	return &syscall.SysProcAttr{Setpgid: true}
}
