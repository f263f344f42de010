package commands

import (
	"github.com/spf13/cobra"

	"wqa/internal/cli"
	"wqa/internal/registry"
	"wqa/internal/suite"
	"wqa/internal/ui"
)

// ListCommand handles the list command.
type ListCommand struct {
	flags *cli.Flags
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	filter, err := registry.ParseFilter(lc.flags.Filter)
	if err != nil {
		return err
	}
	cases := registry.FilterByName(suite.Default().Discover(filter), lc.flags.NameFilter)
	ui.NewFormatter().PrintCaseList(cases)
	return nil
}
