package main

import (
	"fmt"
	"os"

	"fitlaunch/internal/cli"
	"fitlaunch/internal/cli/commands"
	"fitlaunch/internal/config"
	"fitlaunch/internal/logging"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "fitlaunch",
		Short:   "FitNesse server launcher",
		Long:    `Start, run and stop FitNesse servers for build pipelines, and register wiki symlinks for the suites under test.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logging.New(false))

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
