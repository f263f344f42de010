package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wqa/internal/cli"
	"wqa/internal/config"
	"wqa/internal/domain"
	"wqa/internal/driver"
	"wqa/internal/execution"
	"wqa/internal/logging"
	"wqa/internal/registry"
	"wqa/internal/storage"
	"wqa/internal/suite"
	"wqa/internal/ui"
	"wqa/internal/weatherapi"
)

// RunCommand handles the run command.
type RunCommand struct {
	flags *cli.Flags
}

// Execute runs the command.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.flags.ToConfigFlags())
	if err != nil {
		return err
	}
	log := logging.New(cfg.Debug)
	defer log.Sync()

	// Discover and filter cases.
	reg := suite.Default()
	filter, err := registry.ParseFilter(cfg.Flags.Filter)
	if err != nil {
		return err
	}
	cases := registry.FilterByName(reg.Discover(filter), cfg.Flags.NameFilter)
	if len(cases) == 0 {
		color.Yellow("No cases match the filter")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	log.Info("starting run",
		zap.String("environment", cfg.Environment),
		zap.Strings("engines", cfg.Engines),
		zap.Int("cases", len(cases)),
		zap.Int("workers", cfg.Workers),
		zap.Int("retries", cfg.Retries))

	// Execute, once per configured engine.
	var allResults []domain.Result
	var totalDuration time.Duration
	var infraErr error
	for _, engine := range cfg.Engines {
		engCfg := cfg.ForEngine(engine)
		artifacts := execution.NewArtifactStore(engCfg.ArtifactsPath())
		runner := execution.NewRunner(engCfg, artifacts, log)
		pool := execution.NewPool(engCfg, runner, newResources(engCfg, log), log)
		pool.SetProgress(ui.NewProgress(len(cases)))

		results, duration, err := pool.Run(ctx, cases)
		allResults = append(allResults, results...)
		totalDuration += duration
		if err != nil {
			infraErr = err
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	output := domain.NewRunOutput(allResults, totalDuration,
		cfg.Environment, strings.Join(cfg.Engines, ","), cfg.Workers, cfg.Retries)

	// Persist the report before anything else can fail.
	st := storage.NewJSONStorage(cfg)
	if err := st.Save(output); err != nil {
		return fmt.Errorf("save run report: %w", err)
	}

	if cfg.Flags.History && cfg.HistoryDSN != "" {
		recordCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storage.NewHistory(cfg.HistoryDSN).Record(recordCtx, output); err != nil {
			log.Warn("history record failed", zap.Error(err))
		}
		cancel()
	}

	ui.NewFormatter().PrintSummary(output)

	failures := output.Failures()
	if cfg.Flags.OpenFailures && len(failures) > 0 {
		if err := ui.NewFailureViewer(st).View(output); err != nil {
			log.Warn("failures viewer", zap.Error(err))
		}
	}

	switch {
	case infraErr != nil:
		return &ExitError{Code: 2, Msg: fmt.Sprintf("run aborted: %v", infraErr)}
	case len(failures) > 0:
		return &ExitError{Code: 1, Msg: fmt.Sprintf("%d of %d cases failed", len(failures), output.Meta.TotalCases)}
	default:
		return nil
	}
}

// newResources builds the per-worker resource factory: every worker gets
// its own browser engine instance and API client.
func newResources(cfg *config.Config, log *zap.Logger) execution.ResourceFactory {
	return func(workerID int) (*execution.Resources, func(), error) {
		browser, err := driver.NewChrome(driver.Options{
			Engine:   cfg.Engine(),
			ExecPath: cfg.ExecPath,
			Headless: cfg.Headless,
		})
		if err != nil {
			return nil, nil, err
		}
		api := weatherapi.New(cfg, log.With(zap.Int("worker", workerID)))
		cleanup := func() { _ = browser.Close() }
		return &execution.Resources{API: api, Browser: browser}, cleanup, nil
	}
}
