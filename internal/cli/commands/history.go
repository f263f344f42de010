package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wqa/internal/cli"
	"wqa/internal/config"
	"wqa/internal/storage"
	"wqa/internal/ui"
)

// HistoryCommand handles the history command.
type HistoryCommand struct {
	flags *cli.Flags
}

// Execute runs the command.
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(hc.flags.ToConfigFlags())
	if err != nil {
		return err
	}
	if cfg.HistoryDSN == "" {
		return fmt.Errorf("run history is not configured (set WQA_HISTORY_DSN)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := storage.NewHistory(cfg.HistoryDSN).Recent(ctx, hc.flags.Limit)
	if err != nil {
		return err
	}
	ui.NewFormatter().PrintHistory(records)
	return nil
}
