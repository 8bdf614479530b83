package commands

import (
	"fitlaunch/internal/fitnesse"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SymLinkCommand handles the symlink command
type SymLinkCommand struct {
	*deps
}

// Execute runs the command
func (sc *SymLinkCommand) Execute(cmd *cobra.Command, args []string) error {
	port, _, err := sc.resolvePort()
	if err != nil {
		return err
	}

	launches, err := sc.resolveLaunches()
	if err != nil {
		return err
	}
	if len(launches) == 0 {
		color.Yellow("No launches to register")
		return nil
	}

	sc.logger.Debugf("Registering %d link(s) for %d launch(es) on port %d",
		len(fitnesse.LinkNames(launches...)), len(launches), port)

	report, err := sc.registerSymLinks(cmd.Context(), port, launches)
	if err != nil {
		return err
	}

	sc.formatter.PrintSymLinkReport(report)
	return nil
}
