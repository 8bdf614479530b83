//go:build windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// isProcessAlive treats a successful FindProcess as running; FindProcess
// opens a handle and fails for exited processes on Windows.
func isProcessAlive(p *os.Process) bool {
	found, err := os.FindProcess(p.Pid)
	if err != nil {
		return false
	}
	_ = found.Release()
	return true
}

// sendTermSignal kills the process; Windows has no SIGTERM.
func sendTermSignal(p *os.Process) error {
	return p.Kill()
}
