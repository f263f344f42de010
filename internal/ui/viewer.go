package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"wqa/internal/domain"
	"wqa/internal/storage"
)

// FailureViewer displays the failed cases of the last run in an interactive
// TUI. Failures can be marked resolved; the flag is written back to the
// report so triage state survives between sessions.
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a FailureViewer backed by the report storage.
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View opens the interactive viewer for the given report.
func (v *FailureViewer) View(output *domain.RunOutput) error {
	failures := output.Failures()
	if len(failures) == 0 {
		color.Green("✓ No failures in the last run")
		return nil
	}

	// Map viewer rows back to report indices so resolve flags persist.
	rowToResult := make([]int, 0, len(failures))
	for i, r := range output.Results {
		if r.Failed() {
			rowToResult = append(rowToResult, i)
		}
	}

	saveResolved := func() error {
		return v.storage.Save(output)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	itemText := func(row int) string {
		r := output.Results[rowToResult[row]]
		if r.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", row+1, r.CaseID)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", row+1, r.CaseID)
	}
	for row := range rowToResult {
		list.AddItem(itemText(row), "", 0, nil)
	}

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	unresolvedCount := func() int {
		count := 0
		for _, idx := range rowToResult {
			if !output.Results[idx].Resolved {
				count++
			}
		}
		return count
	}

	refreshStats := func() {
		statsView.SetText(fmt.Sprintf(
			"[cyan]Failures:[white] %d  [cyan]Unresolved:[white] %d   [gray](Enter: details, r: resolve, q: quit)",
			len(rowToResult), unresolvedCount()))
	}

	showDetails := func(row int) {
		r := output.Results[rowToResult[row]]
		var b strings.Builder
		fmt.Fprintf(&b, "[yellow]%s[white]\n\n", r.CaseID)
		fmt.Fprintf(&b, "[cyan]Outcome:[white] %s\n", r.Outcome)
		if r.Kind != domain.KindNone {
			fmt.Fprintf(&b, "[cyan]Kind:[white] %s\n", r.Kind)
		}
		if r.Engine != "" {
			fmt.Fprintf(&b, "[cyan]Engine:[white] %s\n", r.Engine)
		}
		fmt.Fprintf(&b, "[cyan]Attempts:[white] %d\n", r.Attempts)
		fmt.Fprintf(&b, "[cyan]Duration:[white] %s\n", r.Duration)
		if len(r.Tags) > 0 {
			fmt.Fprintf(&b, "[cyan]Tags:[white] %s\n", strings.Join(r.Tags, ", "))
		}
		if r.Message != "" {
			fmt.Fprintf(&b, "\n[red]%s[white]\n", tview.Escape(r.Message))
		}
		if len(r.Attachments) > 0 {
			fmt.Fprintf(&b, "\n[cyan]Artifacts:[white]\n")
			for _, att := range r.Attachments {
				fmt.Fprintf(&b, "  %s: %s\n", att.Name, att.Path)
			}
		}
		detailsView.SetText(b.String())
	}

	list.SetChangedFunc(func(row int, mainText, secondaryText string, shortcut rune) {
		showDetails(row)
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Rune() == 'q', event.Key() == tcell.KeyEscape:
			app.Stop()
			return nil
		case event.Rune() == 'r':
			row := list.GetCurrentItem()
			idx := rowToResult[row]
			output.Results[idx].Resolved = !output.Results[idx].Resolved
			list.SetItemText(row, itemText(row), "")
			refreshStats()
			_ = saveResolved()
			return nil
		}
		return event
	})

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	refreshStats()
	showDetails(0)

	return app.SetRoot(flex, true).EnableMouse(true).Run()
}
