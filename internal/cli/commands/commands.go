package commands

import (
	"github.com/spf13/cobra"

	"wqa/internal/cli"
)

// ExitError maps a command outcome to a process exit code so callers can
// tell assertion failures (1) apart from infrastructure failures (2).
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

// Commands holds all CLI commands.
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands sharing one flag set.
func NewCommands(flags *cli.Flags) *Commands {
	return &Commands{
		Run:      &RunCommand{flags: flags},
		List:     &ListCommand{flags: flags},
		Failures: &FailuresCommand{flags: flags},
		History:  &HistoryCommand{flags: flags},
	}
}

// Register registers all commands with cobra.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	runCmd := &cobra.Command{
		Use:           "run",
		Short:         "Run weather checks in parallel",
		Long:          "Discover, filter, and execute the weather checks across a worker pool, then write the structured run report",
		RunE:          c.Run.Execute,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Tag filter expression, e.g. 'tag:smoke' or '(ui or e2e) and not regression'")
	runCmd.Flags().StringVarP(&flags.NameFilter, "name", "n", "", "Filter cases by ID pattern (supports wildcards, e.g. 'api/*' or '*forecast*')")
	runCmd.Flags().StringVarP(&flags.Environment, "env", "e", "", "Target environment name (loads <env>.env)")
	runCmd.Flags().StringVarP(&flags.Engines, "browser", "b", "", "Browser engine(s), comma separated (default chromium)")
	runCmd.Flags().IntVarP(&flags.Workers, "parallel", "p", 0, "Worker pool size")
	runCmd.Flags().IntVarP(&flags.Retries, "retries", "r", -1, "Retry count for failed cases")
	runCmd.Flags().DurationVarP(&flags.Timeout, "timeout", "t", 0, "Per-case timeout")
	runCmd.Flags().DurationVar(&flags.RunTimeout, "run-timeout", 0, "Overall run deadline; remaining cases are recorded as skipped when it expires")
	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Run the browser with a visible window")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop scheduling new cases after the first failure")
	runCmd.Flags().BoolVar(&flags.History, "history", false, "Record the run summary in the history database")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered cases",
		Long:  "Show all cases matching the filter, with their tags, without executing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Tag filter expression")
	listCmd.Flags().StringVarP(&flags.NameFilter, "name", "n", "", "Filter cases by ID pattern")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View last run's failures interactively",
		Long:  "Display the failed cases from the last run report in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	failuresCmd.Flags().StringVarP(&flags.Environment, "env", "e", "", "Target environment name")
	rootCmd.AddCommand(failuresCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent recorded runs",
		Long:  "List run summaries recorded in the history database",
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().StringVarP(&flags.Environment, "env", "e", "", "Target environment name")
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "l", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
