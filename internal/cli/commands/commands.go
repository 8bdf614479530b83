package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fitlaunch/internal/cli"
	"fitlaunch/internal/config"
	"fitlaunch/internal/discovery"
	"fitlaunch/internal/domain"
	"fitlaunch/internal/fitnesse"
	"fitlaunch/internal/process"
	"fitlaunch/internal/storage"
	"fitlaunch/internal/ui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Start     *StartCommand
	Launch    *LaunchCommand
	Stop      *StopCommand
	SymLink   *SymLinkCommand
	List      *ListCommand
	Status    *StatusCommand
	Classpath *ClasspathCommand
	Links     *LinksCommand
}

// deps are shared by every command. Components that depend on loaded
// configuration are built per execution.
type deps struct {
	config      *config.Config
	logger      *logrus.Logger
	storage     storage.Storage
	formatter   *ui.Formatter
	progressOut io.Writer
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *logrus.Logger) *Commands {
	d := &deps{
		config:      cfg,
		logger:      logger,
		storage:     storage.NewJSONStorage(cfg),
		formatter:   ui.NewFormatter(),
		progressOut: os.Stderr,
	}

	return &Commands{
		Start:     &StartCommand{deps: d},
		Launch:    &LaunchCommand{deps: d},
		Stop:      &StopCommand{deps: d},
		SymLink:   &SymLinkCommand{deps: d},
		List:      &ListCommand{deps: d},
		Status:    &StatusCommand{deps: d},
		Classpath: &ClasspathCommand{deps: d},
		Links:     &LinksCommand{deps: d},
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	logger := c.Start.logger

	rootCmd.PersistentFlags().StringVar(&flags.Project, "project", config.DefaultProjectPath, "Project directory holding .env, fitlaunch.yaml and run state")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVarP(&flags.Port, "port", "p", 0, fmt.Sprintf("FitNesse port (default %d, or the port of the started server)", config.DefaultPort))
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.Project)
		if err != nil {
			return err
		}
		// Update config in place so every command sees it
		*cfg = *loaded
		flags.Apply(cfg)
		if flags.Verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	serverFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.WorkingDir, "working-dir", "d", "", "Directory FitNesse runs in")
		cmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Wiki root directory name")
		cmd.Flags().StringVarP(&flags.LogDir, "log-dir", "l", "", "Directory for FitNesse logs")
		cmd.Flags().StringVar(&flags.Classpath, "classpath", "", "Classpath holding fitnesse-standalone and fixtures")
		cmd.Flags().StringVar(&flags.JavaHome, "java-home", "", "Java installation (default $JAVA_HOME, else java on PATH)")
	}
	pathFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&flags.BaseDir, "base-dir", "", "Base directory symlink paths are resolved against")
		cmd.Flags().StringVar(&flags.TestResourceDir, "test-resource-dir", "", "Wiki page directory relative to the base dir")
	}
	linkFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringSliceVar(&flags.Suites, "suite", nil, "Suite page to launch (repeatable)")
		cmd.Flags().StringSliceVar(&flags.Tests, "test", nil, "Test page to launch (repeatable)")
		cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter discovered pages by name pattern (supports wildcards, e.g. 'Acceptance*')")
		pathFlags(cmd)
	}

	// Start command
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Fork a FitNesse server in the background",
		Long:  "Start FitNesse as a child process, record it in the run state and optionally wait for it and register symlinks",
		Args:  cobra.NoArgs,
		RunE:  c.Start.Execute,
	}
	serverFlags(startCmd)
	linkFlags(startCmd)
	startCmd.Flags().BoolVarP(&flags.Wait, "wait", "w", false, "Wait until the server answers HTTP requests")
	startCmd.Flags().BoolVar(&flags.Register, "register", false, "Register symlinks once the server answers (implies --wait)")
	rootCmd.AddCommand(startCmd)

	// Launch command
	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "Run a FitNesse server in the foreground",
		Long:  "Run FitNesse in the foreground and exit with its exit code",
		Args:  cobra.NoArgs,
		RunE:  c.Launch.Execute,
	}
	serverFlags(launchCmd)
	rootCmd.AddCommand(launchCmd)

	// Stop command
	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Shut a FitNesse server down",
		Long:  "Send a shutdown request to the server on --port, or the server recorded by start",
		Args:  cobra.NoArgs,
		RunE:  c.Stop.Execute,
	}
	stopCmd.Flags().BoolVar(&flags.WaitStopped, "wait-stopped", false, "Poll until the server stops answering")
	stopCmd.Flags().StringVar(&flags.Username, "user", "", "FitNesse user for the shutdown request")
	stopCmd.Flags().StringVar(&flags.Password, "password", "", "FitNesse password for the shutdown request")
	rootCmd.AddCommand(stopCmd)

	// Symlink command
	symlinkCmd := &cobra.Command{
		Use:   "symlink",
		Short: "Register wiki symlinks on a running server",
		Long:  "Create or replace one root symlink per top-level page of the given or discovered launches",
		Args:  cobra.NoArgs,
		RunE:  c.SymLink.Execute,
	}
	linkFlags(symlinkCmd)
	rootCmd.AddCommand(symlinkCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered launches",
		Long:  "Scan the test resource directory and list launches with their link names",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	linkFlags(listCmd)
	listCmd.Flags().BoolVarP(&flags.Pages, "pages", "c", false, "List the test pages below each launch")
	rootCmd.AddCommand(listCmd)

	// Status command
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the FitNesse server",
		Args:  cobra.NoArgs,
		RunE:  c.Status.Execute,
	}
	rootCmd.AddCommand(statusCmd)

	// Classpath command
	classpathCmd := &cobra.Command{
		Use:   "classpath [classpath]",
		Short: "Print a classpath as wiki !path lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Classpath.Execute,
	}
	rootCmd.AddCommand(classpathCmd)

	// Links command
	linksCmd := &cobra.Command{
		Use:   "links",
		Short: "View registered symlinks interactively",
		Long:  "Display the last symlink registration report in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Links.Execute,
	}
	pathFlags(linksCmd)
	rootCmd.AddCommand(linksCmd)
}

func (d *deps) newController(opts ...process.Option) *process.Controller {
	base := []process.Option{
		process.WithJavaPath(d.config.GetJavaPath()),
		process.WithShutdownWait(d.config.ShutdownWait),
		process.WithClientOptions(d.clientOptions()...),
	}
	if d.config.Flags.WaitStopped {
		base = append(base, process.WithWaitStopped(d.config.StopTimeout))
	}
	return process.NewController(d.logger, append(base, opts...)...)
}

func (d *deps) newRegistrar() *fitnesse.Registrar {
	return fitnesse.NewRegistrar(d.logger, d.clientOptions()...)
}

func (d *deps) newClient(port int) *fitnesse.Client {
	return fitnesse.NewClient(port, d.clientOptions()...)
}

func (d *deps) clientOptions() []fitnesse.ClientOption {
	return []fitnesse.ClientOption{
		fitnesse.WithTimeout(d.config.RequestTimeout),
		fitnesse.WithCredentials(d.config.Username, d.config.Password),
	}
}

// resolvePort prefers --port, then the recorded server, then configuration
func (d *deps) resolvePort() (int, *domain.ServerState, error) {
	state, err := d.storage.LoadServer()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return 0, nil, err
	}
	if d.config.Flags.Port > 0 {
		return d.config.Flags.Port, state, nil
	}
	if state != nil {
		return state.Port, state, nil
	}
	return d.config.Port, nil, nil
}

// resolveLaunches returns explicit --suite/--test launches, or the pages
// discovered in the test resource directory
func (d *deps) resolveLaunches() ([]domain.Launch, error) {
	var launches []domain.Launch
	for _, name := range d.config.Flags.Suites {
		launches = append(launches, domain.NewSuite(name))
	}
	for _, name := range d.config.Flags.Tests {
		launches = append(launches, domain.NewTest(name))
	}

	if len(launches) == 0 {
		scanner := discovery.NewScanner(d.config.PathsToIgnore, discovery.NewParser())
		found, err := scanner.Scan(d.config.GetTestResourcePath())
		if err != nil {
			return nil, err
		}
		launches = found
	}

	return discovery.NewFilter().FilterByName(launches, d.config.Flags.NameFilter), nil
}

// registerSymLinks registers and records symlinks for launches on port
func (d *deps) registerSymLinks(ctx context.Context, port int, launches []domain.Launch) (domain.SymLinkReport, error) {
	registrar := d.newRegistrar()
	registrar.SetProgress(ui.NewProgressBarWithWriter(len(fitnesse.LinkNames(launches...)), d.progressOut))

	report, err := registrar.CreateSymLinks(ctx, d.config.BaseDir, d.config.TestResourceDir, port, launches...)
	if err != nil {
		return report, err
	}
	if err := d.storage.SaveSymLinks(report); err != nil {
		return report, fmt.Errorf("failed to save symlink report: %w", err)
	}
	return report, nil
}
