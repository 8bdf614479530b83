package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultPort is the port FitNesse listens on
	DefaultPort = 9123
	// DefaultWorkingDir is the directory FitNesse is started in
	DefaultWorkingDir = "."
	// DefaultRoot is the name of the wiki root directory
	DefaultRoot = "FitNesseRoot"
	// DefaultTestResourceDir is where wiki pages live, relative to the base dir
	DefaultTestResourceDir = "src/test/fitnesse"
	// DefaultClasspathEnvName is the environment variable handed the classpath
	DefaultClasspathEnvName = "maven.classpath"
	// DefaultStateDir is the directory for persisted run state
	DefaultStateDir = ".fitlaunch"
	// DefaultServerStateFile holds the forked server description
	DefaultServerStateFile = "server.json"
	// DefaultSymLinkReportFile holds the last registration report
	DefaultSymLinkReportFile = "symlinks.json"
	// DefaultConfigName is the optional config file name (without extension)
	DefaultConfigName = "fitlaunch"
	// EnvPrefix prefixes environment overrides, e.g. FITLAUNCH_PORT
	EnvPrefix = "FITLAUNCH"

	// DefaultShutdownWait is the pause after a shutdown request
	DefaultShutdownWait = 50 * time.Millisecond
	// DefaultReadyTimeout bounds waiting for a forked server to answer
	DefaultReadyTimeout = 30 * time.Second
	// DefaultStopTimeout bounds waiting for a server to stop answering
	DefaultStopTimeout = 10 * time.Second
	// DefaultRequestTimeout bounds a single HTTP call to FitNesse
	DefaultRequestTimeout = 10 * time.Second
)

// DefaultPathsToIgnore are top-level wiki directories that are never launches
var DefaultPathsToIgnore = []string{
	"files",
	"ErrorLogs",
	"RecentChanges",
	"FitNesse",
	"FrontPage",
	"PageHeader",
	"PageFooter",
	"TemplateLibrary",
}
