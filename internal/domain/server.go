package domain

import "time"

// ServerState describes a forked FitNesse server
type ServerState struct {
	PID         int       `json:"pid"`
	Port        int       `json:"port"`
	WorkingDir  string    `json:"working_dir"`
	Root        string    `json:"root"`
	LogDir      string    `json:"log_dir,omitempty"`
	CommandLine []string  `json:"command_line"`
	StartedAt   time.Time `json:"started_at"`
}
