package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fitlaunch/internal/domain"

	"github.com/fatih/color"
)

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────────────────┐"
	tableMiddle = "├─────────────────────────────────┼─────────────────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────────────────┘"
)

// PageLister lists the test pages below a launch
type PageLister func(launch domain.Launch) ([]string, error)

// ServerStatus is what `status` knows about a server
type ServerStatus struct {
	State      *domain.ServerState
	Port       int
	Alive      bool
	Reachable  bool
	StatusCode int
}

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterWithWriter(os.Stdout)
}

// NewFormatterWithWriter creates a new Formatter writing to w
func NewFormatterWithWriter(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintBanner prints a boxed title
func (f *Formatter) PrintBanner(title string) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(f.out, "╔════════════════════════════════════════════════════════════╗")
	cyan.Fprintf(f.out, "║ %-58s ║\n", title)
	cyan.Fprintln(f.out, "╚════════════════════════════════════════════════════════════╝")
}

// PrintServerStatus prints what is known about a server
func (f *Formatter) PrintServerStatus(status ServerStatus) {
	f.PrintBanner("FitNesse Server Status")
	fmt.Fprintln(f.out, tableTop)

	f.row("Port", fmt.Sprintf("%d", status.Port), color.FgWhite)
	if status.State != nil {
		fmt.Fprintln(f.out, tableMiddle)
		f.row("PID", fmt.Sprintf("%d", status.State.PID), color.FgWhite)
		fmt.Fprintln(f.out, tableMiddle)
		f.row("Process", aliveText(status.Alive), aliveColor(status.Alive))
		fmt.Fprintln(f.out, tableMiddle)
		f.row("Working Dir", status.State.WorkingDir, color.FgWhite)
		fmt.Fprintln(f.out, tableMiddle)
		f.row("Root", status.State.Root, color.FgWhite)
		fmt.Fprintln(f.out, tableMiddle)
		f.row("Started", status.State.StartedAt.Format(time.RFC3339), color.FgWhite)
	}
	fmt.Fprintln(f.out, tableMiddle)
	if status.Reachable {
		f.row("HTTP", fmt.Sprintf("answering (%d)", status.StatusCode), color.FgGreen)
	} else {
		f.row("HTTP", "not answering", color.FgRed)
	}
	fmt.Fprintln(f.out, tableBottom)
}

func (f *Formatter) row(label, value string, attr color.Attribute) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	color.New(attr).Fprintf(f.out, "%-39s │\n", truncate(value, 39))
}

// PrintLaunches prints launches grouped by link name, with their test pages
// when pages is non-nil
func (f *Formatter) PrintLaunches(launches []domain.Launch, pages PageLister) error {
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	for _, launch := range launches {
		cyan.Fprintf(f.out, "%s", launch.LinkName())
		fmt.Fprintf(f.out, "  %s (%s)\n", launch.PageName, launch.Kind)
		if pages == nil {
			continue
		}
		names, err := pages(launch)
		if err != nil {
			return err
		}
		for i, name := range names {
			connector := "  |_"
			if i == len(names)-1 {
				connector = "   |_"
			}
			yellow.Fprintf(f.out, "%s %s\n", connector, name)
		}
	}

	fmt.Fprintln(f.out)
	color.New(color.FgGreen).Fprintf(f.out, "✓ %d launch(es)\n", len(launches))
	return nil
}

// PrintSymLinkReport prints a registration report
func (f *Formatter) PrintSymLinkReport(report domain.SymLinkReport) {
	fmt.Fprintln(f.out)
	for _, result := range report.Results {
		if result.Accepted() {
			color.New(color.FgGreen).Fprintf(f.out, "✓ %-24s", result.LinkName)
		} else {
			color.New(color.FgRed).Fprintf(f.out, "✗ %-24s", result.LinkName)
		}
		fmt.Fprintf(f.out, " %d  %s\n", result.StatusCode, result.LinkPath)
	}
	fmt.Fprintln(f.out)
	color.New(color.FgCyan).Fprintf(f.out, "%d symlink(s) registered on port %d\n", len(report.Results), report.Port)
}

func aliveText(alive bool) string {
	if alive {
		return "running"
	}
	return "not running"
}

func aliveColor(alive bool) color.Attribute {
	if alive {
		return color.FgGreen
	}
	return color.FgRed
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return "…" + string([]rune(s)[len([]rune(s))-n+1:])
}

// JoinCommandLine renders a command line for display
func JoinCommandLine(commandLine []string) string {
	parts := make([]string, len(commandLine))
	for i, arg := range commandLine {
		if arg == "" || strings.ContainsAny(arg, " \t") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
