//go:build windows

package process

import (
	"os"
	"syscall"
)

func exitStatus(state *os.ProcessState) (status int, signaled bool) {
	return state.ExitCode(), false
}

func sysProcAttr(background bool) *syscall.SysProcAttr {
	return nil
}
