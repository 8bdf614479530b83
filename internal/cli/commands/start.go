package commands

import (
	"fmt"

	"fitlaunch/internal/process"
	"fitlaunch/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// StartCommand handles the start command
type StartCommand struct {
	*deps
}

// Execute runs the command
func (sc *StartCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := sc.config
	ctrl := sc.newController()

	server, err := ctrl.Fork(process.ForkOptions{
		Port:              cfg.GetPort(),
		WorkingDir:        cfg.WorkingDir,
		Root:              cfg.Root,
		LogDir:            cfg.LogDir,
		Classpath:         cfg.Classpath,
		ClasspathEnvName:  cfg.ClasspathEnvName,
		ClasspathEnvValue: cfg.GetClasspathEnvValue(),
	})
	if err != nil {
		return err
	}

	if err := sc.storage.SaveServer(server.State()); err != nil {
		return fmt.Errorf("failed to save server state: %w", err)
	}

	sc.formatter.PrintBanner("FitNesse started")
	fmt.Fprintf(cmd.OutOrStdout(), "PID %d, port %d\n%s\n", server.PID(), server.Port(), ui.JoinCommandLine(server.CommandLine()))

	if cfg.Flags.Wait || cfg.Flags.Register {
		client := sc.newClient(server.Port())
		if err := client.WaitReady(cmd.Context(), cfg.ReadyTimeout); err != nil {
			sc.abandon(server)
			return err
		}
		color.Green("FitNesse is answering on %s", client.Address())
	}

	// Detach, the server outlives this command
	if err := server.Release(); err != nil {
		sc.logger.WithError(err).Warn("Failed to release server process")
	}

	if !cfg.Flags.Register {
		return nil
	}

	launches, err := sc.resolveLaunches()
	if err != nil {
		return err
	}
	if len(launches) == 0 {
		color.Yellow("No launches to register")
		return nil
	}

	report, err := sc.registerSymLinks(cmd.Context(), server.Port(), launches)
	if err != nil {
		return err
	}
	sc.formatter.PrintSymLinkReport(report)
	return nil
}

// abandon stops a server that never became ready and forgets it
func (sc *StartCommand) abandon(server *process.Server) {
	if server.Alive() {
		sc.logger.Warnf("FitNesse process %d did not become ready, terminating", server.PID())
		if err := server.Terminate(); err != nil {
			sc.logger.WithError(err).Error("Failed to terminate FitNesse process")
		}
	}
	_ = server.Wait()

	if err := sc.storage.ClearServer(); err != nil {
		sc.logger.WithError(err).Warn("Failed to clear server state")
	}
}
