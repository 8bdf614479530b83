package cli

import "fitlaunch/internal/config"

// Flags holds command-line flags
type Flags struct {
	Project         string
	Verbose         bool
	Port            int
	WorkingDir      string
	Root            string
	LogDir          string
	Classpath       string
	JavaHome        string
	BaseDir         string
	TestResourceDir string
	Username        string
	Password        string
	Suites          []string
	Tests           []string
	NameFilter      string
	Pages           bool
	Wait            bool
	WaitStopped     bool
	Register        bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Port:        f.Port,
		Suites:      f.Suites,
		Tests:       f.Tests,
		NameFilter:  f.NameFilter,
		Pages:       f.Pages,
		Wait:        f.Wait,
		WaitStopped: f.WaitStopped,
		Register:    f.Register,
		Verbose:     f.Verbose,
	}
}

// Apply stores the flags on cfg and lets every non-empty flag override
// the loaded configuration
func (f *Flags) Apply(cfg *config.Config) {
	cfg.Flags = f.ToConfigFlags()

	overrides := []struct {
		value  string
		target *string
	}{
		{f.WorkingDir, &cfg.WorkingDir},
		{f.Root, &cfg.Root},
		{f.LogDir, &cfg.LogDir},
		{f.Classpath, &cfg.Classpath},
		{f.JavaHome, &cfg.JavaHome},
		{f.BaseDir, &cfg.BaseDir},
		{f.TestResourceDir, &cfg.TestResourceDir},
		{f.Username, &cfg.Username},
		{f.Password, &cfg.Password},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}
}
