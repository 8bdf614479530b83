package process

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"fitlaunch/internal/domain"
)

// Server is a handle to a forked FitNesse process
type Server struct {
	cmd         *exec.Cmd
	opts        ForkOptions
	commandLine []string
	startedAt   time.Time
}

// PID returns the process ID
func (s *Server) PID() int {
	return s.cmd.Process.Pid
}

// Port returns the port the server was started on
func (s *Server) Port() int {
	return s.opts.Port
}

// CommandLine returns the command line the server was started with
func (s *Server) CommandLine() []string {
	return s.commandLine
}

// State describes the server for persistence
func (s *Server) State() domain.ServerState {
	return domain.ServerState{
		PID:         s.PID(),
		Port:        s.opts.Port,
		WorkingDir:  s.opts.WorkingDir,
		Root:        s.opts.Root,
		LogDir:      s.opts.LogDir,
		CommandLine: s.commandLine,
		StartedAt:   s.startedAt,
	}
}

// Alive reports whether the process still exists
func (s *Server) Alive() bool {
	return isProcessAlive(s.cmd.Process)
}

// Terminate asks the process to exit
func (s *Server) Terminate() error {
	return sendTermSignal(s.cmd.Process)
}

// Wait blocks until the process exits
func (s *Server) Wait() error {
	return s.cmd.Wait()
}

// Release detaches the handle; the process keeps running
func (s *Server) Release() error {
	return s.cmd.Process.Release()
}

// ProcessAlive reports whether a process with pid is running
func ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return isProcessAlive(p)
}

// TerminateProcess asks the process with pid to exit
func TerminateProcess(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process %d: %w", pid, err)
	}
	return sendTermSignal(p)
}
