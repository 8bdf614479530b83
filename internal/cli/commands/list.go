package commands

import (
	"os"
	"path/filepath"
	"strings"

	"fitlaunch/internal/discovery"
	"fitlaunch/internal/domain"
	"fitlaunch/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	*deps
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	launches, err := lc.resolveLaunches()
	if err != nil {
		return err
	}
	if len(launches) == 0 {
		color.Yellow("No launches found in %s", lc.config.GetTestResourcePath())
		return nil
	}

	var pages ui.PageLister
	if lc.config.Flags.Pages {
		pages = lc.testPages
	}
	return lc.formatter.PrintLaunches(launches, pages)
}

// testPages lists the test pages below a launch. Explicit launches may
// name pages that are not on disk, those have none.
func (lc *ListCommand) testPages(launch domain.Launch) ([]string, error) {
	dir := filepath.Join(lc.config.GetTestResourcePath(), filepath.FromSlash(strings.ReplaceAll(launch.PageName, ".", "/")))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return discovery.NewParser().FindTestPages(dir, launch.PageName)
}
