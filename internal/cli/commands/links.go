package commands

import (
	"errors"

	"fitlaunch/internal/domain"
	"fitlaunch/internal/storage"
	"fitlaunch/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// LinksCommand handles the links command
type LinksCommand struct {
	*deps
}

// Execute runs the command
func (lc *LinksCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := lc.storage.LoadSymLinks()
	if errors.Is(err, storage.ErrNotFound) {
		color.Yellow("No symlinks registered yet. Run 'fitlaunch symlink' first.")
		return nil
	}
	if err != nil {
		return err
	}

	registrar := lc.newRegistrar()
	reregister := func(result domain.SymLinkResult) (domain.SymLinkResult, error) {
		port := report.Port
		if lc.config.Flags.Port > 0 {
			port = lc.config.Flags.Port
		}
		return registrar.CreateSymLink(cmd.Context(), lc.config.BaseDir, lc.config.TestResourceDir, port, result.LinkName)
	}

	save := func(r *domain.SymLinkReport) error {
		return lc.storage.SaveSymLinks(*r)
	}

	viewer := ui.NewLinkViewer(reregister, save)
	return viewer.View(report)
}
