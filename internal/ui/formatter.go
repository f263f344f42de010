package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"wqa/internal/domain"
	"wqa/internal/registry"
	"wqa/internal/storage"
)

// Formatter renders operator-facing output for the CLI commands.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

func printRow(label string, valuePrint func(format string, args ...interface{})) func(value any) {
	return func(value any) {
		fmt.Printf("│ %-31s │ ", label)
		valuePrint("%-27v │\n", value)
	}
}

const rowSeparator = "├─────────────────────────────────┼─────────────────────────────┤"

// PrintSummary displays the aggregate statistics of a run report.
func (f *Formatter) PrintSummary(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Run Execution Summary                     ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	printRow("Environment", color.White)(meta.Environment)
	fmt.Println(rowSeparator)
	if meta.Engines != "" {
		printRow("Engines", color.White)(meta.Engines)
		fmt.Println(rowSeparator)
	}
	printRow("Total Cases", color.White)(meta.TotalCases)
	fmt.Println(rowSeparator)
	printRow("Passed", color.Green)(meta.Passed)
	fmt.Println(rowSeparator)
	printRow("Failed", color.Red)(meta.Failed)
	fmt.Println(rowSeparator)
	printRow("Errored", color.Red)(meta.Errored)
	fmt.Println(rowSeparator)
	printRow("Skipped", color.Yellow)(meta.Skipped)
	fmt.Println(rowSeparator)
	printRow("Duration", color.White)(fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Println(rowSeparator)
	printRow("Workers", color.White)(meta.Workers)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	for _, r := range output.Failures() {
		kind := string(r.Kind)
		if kind == "" {
			kind = "failure"
		}
		color.Red("  ✗ %s [%s] %s", r.CaseID, kind, r.Message)
		for _, att := range r.Attachments {
			fmt.Printf("      %s: %s\n", att.Name, att.Path)
		}
	}
	fmt.Println()
}

// PrintCaseList displays discovered cases with their tags.
func (f *Formatter) PrintCaseList(cases []registry.Case) {
	if len(cases) == 0 {
		color.Yellow("No cases match the filter")
		return
	}

	color.Cyan("Discovered %d case(s):\n", len(cases))
	for _, c := range cases {
		fmt.Printf("  %s ", color.WhiteString(c.ID))
		color.Cyan("[%s]", strings.Join(c.Tags.Strings(), ", "))
		if c.Summary != "" {
			fmt.Printf("      %s\n", c.Summary)
		}
	}
}

// PrintHistory displays recent run records from the history sink.
func (f *Formatter) PrintHistory(records []storage.RunRecord) {
	if len(records) == 0 {
		color.Yellow("No recorded runs")
		return
	}

	color.Cyan("%-6s %-12s %-12s %7s %7s %7s %8s %10s  %s",
		"ID", "ENV", "ENGINES", "TOTAL", "PASSED", "FAILED", "SKIPPED", "DURATION", "WHEN")
	for _, r := range records {
		line := fmt.Sprintf("%-6d %-12s %-12s %7d %7d %7d %8d %9.1fs  %s",
			r.ID, r.Environment, r.Engines, r.Total, r.Passed, r.Failed, r.Skipped,
			r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
		if r.Failed > 0 || r.Errored > 0 {
			color.Red(line)
		} else {
			color.Green(line)
		}
	}
}
