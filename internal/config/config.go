package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath     string
	BaseDir         string
	TestResourceDir string

	// Server settings
	Port             int
	WorkingDir       string
	Root             string
	LogDir           string
	Classpath        string
	ClasspathEnvName string
	ClasspathEnvVal  string
	JavaHome         string
	Username         string
	Password         string

	// Timing
	ShutdownWait   time.Duration
	ReadyTimeout   time.Duration
	StopTimeout    time.Duration
	RequestTimeout time.Duration

	// State settings
	StateDir string

	// Paths to ignore when scanning for launches
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Port        int
	Suites      []string
	Tests       []string
	NameFilter  string
	Pages       bool
	Wait        bool
	WaitStopped bool
	Register    bool
	Verbose     bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:      DefaultProjectPath,
		BaseDir:          DefaultProjectPath,
		TestResourceDir:  DefaultTestResourceDir,
		Port:             DefaultPort,
		WorkingDir:       DefaultWorkingDir,
		Root:             DefaultRoot,
		ClasspathEnvName: DefaultClasspathEnvName,
		JavaHome:         os.Getenv("JAVA_HOME"),
		ShutdownWait:     DefaultShutdownWait,
		ReadyTimeout:     DefaultReadyTimeout,
		StopTimeout:      DefaultStopTimeout,
		RequestTimeout:   DefaultRequestTimeout,
		StateDir:         DefaultStateDir,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config for the given project and applies, in order,
// the project .env file, an optional fitlaunch.{yaml,json,toml} file and
// FITLAUNCH_* environment variables.
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
		cfg.BaseDir = projectPath
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	v := viper.New()
	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(cfg.ProjectPath)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	cfg.setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg.BaseDir = v.GetString("base_dir")
	cfg.TestResourceDir = v.GetString("test_resource_dir")
	cfg.Port = v.GetInt("port")
	cfg.WorkingDir = v.GetString("working_dir")
	cfg.Root = v.GetString("root")
	cfg.LogDir = v.GetString("log_dir")
	cfg.Classpath = v.GetString("classpath")
	cfg.ClasspathEnvName = v.GetString("classpath_env_name")
	cfg.ClasspathEnvVal = v.GetString("classpath_env_value")
	cfg.JavaHome = v.GetString("java_home")
	cfg.Username = v.GetString("username")
	cfg.Password = v.GetString("password")
	cfg.ShutdownWait = v.GetDuration("shutdown_wait")
	cfg.ReadyTimeout = v.GetDuration("ready_timeout")
	cfg.StopTimeout = v.GetDuration("stop_timeout")
	cfg.RequestTimeout = v.GetDuration("request_timeout")
	cfg.StateDir = v.GetString("state_dir")
	if ignore := v.GetStringSlice("paths_to_ignore"); len(ignore) > 0 {
		cfg.PathsToIgnore = ignore
	}

	return cfg, nil
}

func (c *Config) setDefaults(v *viper.Viper) {
	v.SetDefault("base_dir", c.BaseDir)
	v.SetDefault("test_resource_dir", c.TestResourceDir)
	v.SetDefault("port", c.Port)
	v.SetDefault("working_dir", c.WorkingDir)
	v.SetDefault("root", c.Root)
	v.SetDefault("log_dir", c.LogDir)
	v.SetDefault("classpath", c.Classpath)
	v.SetDefault("classpath_env_name", c.ClasspathEnvName)
	v.SetDefault("classpath_env_value", c.ClasspathEnvVal)
	v.SetDefault("java_home", c.JavaHome)
	v.SetDefault("username", c.Username)
	v.SetDefault("password", c.Password)
	v.SetDefault("shutdown_wait", c.ShutdownWait)
	v.SetDefault("ready_timeout", c.ReadyTimeout)
	v.SetDefault("stop_timeout", c.StopTimeout)
	v.SetDefault("request_timeout", c.RequestTimeout)
	v.SetDefault("state_dir", c.StateDir)
	v.SetDefault("paths_to_ignore", []string{})
}

// GetPort returns the port, using the flag if provided
func (c *Config) GetPort() int {
	if c.Flags.Port > 0 {
		return c.Flags.Port
	}
	return c.Port
}

// GetTestResourcePath returns the directory scanned for wiki pages
func (c *Config) GetTestResourcePath() string {
	if filepath.IsAbs(c.TestResourceDir) {
		return c.TestResourceDir
	}
	return filepath.Join(c.BaseDir, c.TestResourceDir)
}

// GetStatePath returns the full path of a state file, resolved to an
// absolute path so every command reads and writes the same file regardless of cwd.
func (c *Config) GetStatePath(name string) string {
	p := filepath.Join(c.ProjectPath, c.StateDir, name)
	if filepath.IsAbs(c.StateDir) {
		p = filepath.Join(c.StateDir, name)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetJavaPath returns the path to the java binary under JavaHome
func (c *Config) GetJavaPath() string {
	java := "java"
	if runtime.GOOS == "windows" {
		java = "java.exe"
	}
	if c.JavaHome == "" {
		return java
	}
	return filepath.Join(c.JavaHome, "bin", java)
}

// GetClasspathEnvValue returns the value handed to the child through ClasspathEnvName
func (c *Config) GetClasspathEnvValue() string {
	if c.ClasspathEnvVal != "" {
		return c.ClasspathEnvVal
	}
	return c.Classpath
}
