package commands

import (
	"errors"
	"fmt"

	"fitlaunch/internal/process"
	"fitlaunch/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// StopCommand handles the stop command
type StopCommand struct {
	*deps
}

// Execute runs the command
func (sc *StopCommand) Execute(cmd *cobra.Command, args []string) error {
	port, state, err := sc.resolvePort()
	if err != nil {
		return err
	}

	ctrl := sc.newController()
	if ctrl.Shutdown(cmd.Context(), port) {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("FitNesse on port %d acknowledged shutdown", port))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("No FitNesse answered on port %d", port))
	}

	if state == nil || state.Port != port {
		return nil
	}

	// The recorded server ignored the request but is still ours to stop
	if sc.config.Flags.WaitStopped && process.ProcessAlive(state.PID) {
		sc.logger.Warnf("FitNesse process %d still alive, terminating", state.PID)
		if err := process.TerminateProcess(state.PID); err != nil {
			sc.logger.WithError(err).Error("Failed to terminate FitNesse process")
		}
	}

	if err := sc.storage.ClearServer(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to clear server state: %w", err)
	}
	return nil
}
