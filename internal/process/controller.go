// Package process starts, runs and stops FitNesse server processes.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fitlaunch/internal/fitnesse"

	"github.com/sirupsen/logrus"
)

// EntryPoint is the FitNesse main class
const EntryPoint = "fitnesseMain.FitNesseMain"

// ErrInvalidArguments is returned for an argument set FitNesse would reject
var ErrInvalidArguments = errors.New("invalid fitnesse arguments")

// ForkOptions describes a server started as a background child process
type ForkOptions struct {
	Port              int
	WorkingDir        string
	Root              string
	LogDir            string
	Classpath         string
	ClasspathEnvName  string // Environment variable the child receives the classpath in
	ClasspathEnvValue string
}

// LaunchOptions describes a server run in the foreground
type LaunchOptions struct {
	Port             int
	WorkingDir       string
	Root             string
	LogDir           string
	Classpath        string
	ClasspathEnvName string
}

// Validate rejects argument sets FitNesse cannot start with
func (o LaunchOptions) Validate() error {
	if o.Port < 0 || o.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidArguments, o.Port)
	}
	if strings.TrimSpace(o.WorkingDir) == "" {
		return fmt.Errorf("%w: working directory is required", ErrInvalidArguments)
	}
	if strings.TrimSpace(o.Root) == "" {
		return fmt.Errorf("%w: root is required", ErrInvalidArguments)
	}
	return nil
}

// Controller builds FitNesse command lines and manages server processes
type Controller struct {
	logger       *logrus.Logger
	javaPath     string
	shutdownWait time.Duration
	waitStopped  bool
	stopTimeout  time.Duration
	clientOpts   []fitnesse.ClientOption
	stdout       io.Writer
	stderr       io.Writer
	exit         func(int)
}

// Option configures a Controller
type Option func(*Controller)

// WithJavaPath sets the java binary
func WithJavaPath(path string) Option {
	return func(c *Controller) {
		c.javaPath = path
	}
}

// WithShutdownWait sets the pause after a shutdown request
func WithShutdownWait(d time.Duration) Option {
	return func(c *Controller) {
		c.shutdownWait = d
	}
}

// WithWaitStopped makes Shutdown poll until the port stops answering
func WithWaitStopped(timeout time.Duration) Option {
	return func(c *Controller) {
		c.waitStopped = true
		c.stopTimeout = timeout
	}
}

// WithClientOptions sets the options of the HTTP clients used for shutdown
func WithClientOptions(opts ...fitnesse.ClientOption) Option {
	return func(c *Controller) {
		c.clientOpts = opts
	}
}

// WithOutput sets where child output goes when no log dir is configured
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Controller) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithExitFunc replaces os.Exit for LaunchInProcess
func WithExitFunc(exit func(int)) Option {
	return func(c *Controller) {
		c.exit = exit
	}
}

// NewController creates a Controller
func NewController(logger *logrus.Logger, opts ...Option) *Controller {
	c := &Controller{
		logger:       logger,
		javaPath:     "java",
		shutdownWait: 50 * time.Millisecond,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		exit:         os.Exit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildCommandLine returns the command line of a forked server:
// <java> -cp <classpath> fitnesseMain.FitNesseMain -p <port>
func (c *Controller) BuildCommandLine(opts ForkOptions) []string {
	return []string{
		c.javaPath,
		"-cp",
		opts.Classpath,
		EntryPoint,
		"-p",
		strconv.Itoa(opts.Port),
	}
}

// BuildServerArguments returns the FitNesse arguments of a foreground run
func (c *Controller) BuildServerArguments(opts LaunchOptions) []string {
	args := []string{"-e", "0", "-o", "-p", strconv.Itoa(opts.Port), "-d", opts.WorkingDir, "-r", opts.Root}
	if strings.TrimSpace(opts.LogDir) != "" {
		args = append(args, "-l", opts.LogDir)
	}
	return args
}

// Fork starts FitNesse as a child process and returns without waiting for
// it to accept connections; callers poll over HTTP for readiness.
func (c *Controller) Fork(opts ForkOptions) (*Server, error) {
	commandLine := c.BuildCommandLine(opts)

	cmd := exec.Command(commandLine[0], commandLine[1:]...)
	cmd.Env = childEnv(opts.ClasspathEnvName, opts.ClasspathEnvValue)
	if opts.WorkingDir != "" {
		cmd.Dir = opts.WorkingDir
	}
	setSysProcAttr(cmd)

	cmd.Stdout, cmd.Stderr = c.stdout, c.stderr
	var logFile *os.File
	if strings.TrimSpace(opts.LogDir) != "" {
		f, err := openServerLog(opts.LogDir, opts.Port)
		if err != nil {
			return nil, err
		}
		logFile = f
		cmd.Stdout, cmd.Stderr = f, f
	}

	err := cmd.Start()
	if logFile != nil {
		// The child holds its own descriptor
		logFile.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("start fitnesse: %w", err)
	}

	c.logger.Infof("FitNesse process started in: %s with root of: %s on port: %d", opts.WorkingDir, opts.Root, opts.Port)
	c.logger.Debugf("FitNesse command line: %s", strings.Join(commandLine, " "))

	return &Server{
		cmd:         cmd,
		opts:        opts,
		commandLine: commandLine,
		startedAt:   time.Now(),
	}, nil
}

// RunServer runs FitNesse in the foreground and returns its exit code.
// An invalid argument set or a failure to start returns code 1.
func (c *Controller) RunServer(ctx context.Context, opts LaunchOptions) (int, error) {
	if err := opts.Validate(); err != nil {
		return 1, err
	}

	var args []string
	if opts.Classpath != "" {
		args = append(args, "-cp", opts.Classpath)
	}
	args = append(args, EntryPoint)
	args = append(args, c.BuildServerArguments(opts)...)

	c.logger.Infof("FitNesse launching in: %s with root of: %s on port: %d", opts.WorkingDir, opts.Root, opts.Port)

	cmd := exec.CommandContext(ctx, c.javaPath, args...)
	cmd.Env = childEnv(opts.ClasspathEnvName, opts.Classpath)
	cmd.Stdout, cmd.Stderr = c.stdout, c.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("launch fitnesse: %w", err)
	}
	return 0, nil
}

// LaunchInProcess runs FitNesse in the foreground and terminates the
// current process with its exit code, or 1 on any launch failure.
func (c *Controller) LaunchInProcess(ctx context.Context, opts LaunchOptions) {
	code, err := c.RunServer(ctx, opts)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		c.exit(1)
		return
	}
	c.exit(code)
}

// Shutdown asks the server on port to stop. Nothing listening means it is
// already stopped; other failures are logged and swallowed. It always pauses
// for the shutdown wait afterwards. Returns whether a server acknowledged.
func (c *Controller) Shutdown(ctx context.Context, port int) bool {
	client := fitnesse.NewClient(port, c.clientOpts...)

	_, err := client.Shutdown(ctx)
	switch {
	case err == nil:
		c.logger.Infof("FitNesse shutdown requested on port: %d", port)
	case fitnesse.IsConnectionRefused(err):
		c.logger.Info("FitNesse already not running.")
	default:
		c.logger.WithError(err).Error("FitNesse shutdown failed")
	}

	// Pause to give it a chance to shutdown
	select {
	case <-ctx.Done():
	case <-time.After(c.shutdownWait):
	}

	if err == nil && c.waitStopped {
		if werr := client.WaitStopped(ctx, c.stopTimeout); werr != nil {
			c.logger.WithError(werr).Warn("FitNesse still answering after shutdown")
		}
	}
	return err == nil
}

func childEnv(name, value string) []string {
	env := os.Environ()
	if name != "" {
		env = append(env, name+"="+value)
	}
	return env
}

func openServerLog(logDir string, port int) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(logDir, fmt.Sprintf("fitnesse-%d.log", port))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open server log: %w", err)
	}
	return f, nil
}
