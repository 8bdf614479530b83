package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"fitlaunch/internal/domain"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Reregister registers one link again and returns the new result
type Reregister func(result domain.SymLinkResult) (domain.SymLinkResult, error)

// LinkViewer displays a registration report in an interactive TUI
type LinkViewer struct {
	reregister Reregister
	onChange   func(report *domain.SymLinkReport) error
}

// NewLinkViewer creates a LinkViewer. reregister and onChange may be nil.
func NewLinkViewer(reregister Reregister, onChange func(report *domain.SymLinkReport) error) *LinkViewer {
	return &LinkViewer{reregister: reregister, onChange: onChange}
}

// View displays the report until the user exits
func (lv *LinkViewer) View(report *domain.SymLinkReport) error {
	if len(report.Results) == 0 {
		color.Yellow("No symlinks registered yet")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range report.Results {
		list.AddItem(listItemText(report.Results[i], i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	footerView := tview.NewTextView().
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Symlinks on port %d (%d total) | ↑↓ navigate, → details, ← back, [yellow]R[white] re-register, Ctrl+C exit ",
			report.Port, len(report.Results)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Results) {
			detailsView.SetText(formatLinkDetails(report.Results[index]))
		}
	}

	// Re-registration runs off the UI goroutine; busy is only touched on it
	busy := false
	queue := func(f func()) {
		app.QueueUpdateDraw(f)
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if (event.Rune() == 'r' || event.Rune() == 'R') && lv.reregister != nil {
				index := list.GetCurrentItem()
				if busy || index < 0 || index >= len(report.Results) {
					return nil
				}
				busy = true
				footerView.SetText(fmt.Sprintf("[yellow]Re-registering %s...", report.Results[index].LinkName))
				lv.reregisterInBackground(report.Results[index], queue, func(result domain.SymLinkResult, err error) {
					busy = false
					if err != nil {
						footerView.SetText(fmt.Sprintf("[red]%s: %v", report.Results[index].LinkName, err))
						return
					}
					report.Results[index] = result
					list.SetItemText(index, listItemText(result, index), "")
					updateDetails()
					footerView.SetText(fmt.Sprintf("[green]%s re-registered (%d)", result.LinkName, result.StatusCode))
					if lv.onChange != nil {
						if err := lv.onChange(report); err != nil {
							footerView.SetText(fmt.Sprintf("[red]save report: %v", err))
						}
					}
				})
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(footerView, 1, 0, false)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// reregisterInBackground calls reregister on its own goroutine and hands the
// outcome to done through queue, which must run it on the UI goroutine
func (lv *LinkViewer) reregisterInBackground(result domain.SymLinkResult, queue func(func()), done func(domain.SymLinkResult, error)) {
	go func() {
		updated, err := lv.reregister(result)
		queue(func() {
			done(updated, err)
		})
	}()
}

func listItemText(result domain.SymLinkResult, index int) string {
	if result.Accepted() {
		return fmt.Sprintf("[green]✓ [yellow]%d.[white] %s", index+1, result.LinkName)
	}
	return fmt.Sprintf("[red]✗ [yellow]%d.[white] %s", index+1, result.LinkName)
}

// formatLinkDetails formats a result using tview color tags
func formatLinkDetails(result domain.SymLinkResult) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[cyan]Link:[white]\t%s\n", result.LinkName)
	fmt.Fprintf(w, "[cyan]Path:[white]\t%s\n", result.LinkPath)
	statusColor := "green"
	if !result.Accepted() {
		statusColor = "red"
	}
	fmt.Fprintf(w, "[cyan]Status:[white]\t[%s]%d[white]\n", statusColor, result.StatusCode)
	fmt.Fprintf(w, "[cyan]Took:[white]\t%s\n\n", result.Duration)
	fmt.Fprintf(w, "[yellow]Request:[white]\n%s\n", result.URL)

	w.Flush()
	return builder.String()
}
