package commands

import (
	"fitlaunch/internal/process"

	"github.com/spf13/cobra"
)

// LaunchCommand handles the launch command
type LaunchCommand struct {
	*deps
	exit func(int)
}

// Execute runs the command. It does not return unless the exit function does.
func (lc *LaunchCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := lc.config

	opts := []process.Option{process.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())}
	if lc.exit != nil {
		opts = append(opts, process.WithExitFunc(lc.exit))
	}
	ctrl := lc.newController(opts...)

	ctrl.LaunchInProcess(cmd.Context(), process.LaunchOptions{
		Port:             cfg.GetPort(),
		WorkingDir:       cfg.WorkingDir,
		Root:             cfg.Root,
		LogDir:           cfg.LogDir,
		Classpath:        cfg.Classpath,
		ClasspathEnvName: cfg.ClasspathEnvName,
	})
	return nil
}
