package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"wqa/internal/cli"
	"wqa/internal/config"
	"wqa/internal/storage"
	"wqa/internal/ui"
)

// FailuresCommand handles the failures command.
type FailuresCommand struct {
	flags *cli.Flags
}

// Execute runs the command.
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(fc.flags.ToConfigFlags())
	if err != nil {
		return err
	}
	st := storage.NewJSONStorage(cfg)
	output, err := st.Load()
	if err != nil {
		return fmt.Errorf("no run report found (run 'wqa run' first): %w", err)
	}
	return ui.NewFailureViewer(st).View(output)
}
