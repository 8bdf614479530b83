package commands

import (
	"fitlaunch/internal/fitnesse"
	"fitlaunch/internal/process"
	"fitlaunch/internal/ui"

	"github.com/spf13/cobra"
)

// StatusCommand handles the status command
type StatusCommand struct {
	*deps
}

// Execute runs the command
func (sc *StatusCommand) Execute(cmd *cobra.Command, args []string) error {
	port, state, err := sc.resolvePort()
	if err != nil {
		return err
	}

	status := ui.ServerStatus{State: state, Port: port}
	if state != nil {
		status.Alive = process.ProcessAlive(state.PID)
	}

	code, err := sc.newClient(port).Ping(cmd.Context())
	switch {
	case err == nil:
		status.Reachable = true
		status.StatusCode = code
	case fitnesse.IsConnectionRefused(err):
		sc.logger.Debugf("Nothing listening on port %d", port)
	default:
		sc.logger.WithError(err).Warn("FitNesse ping failed")
	}

	sc.formatter.PrintServerStatus(status)
	return nil
}
