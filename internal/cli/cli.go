package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/config"
	"github.com/pfrederiksen/mma-odds/internal/fetch"
	"github.com/pfrederiksen/mma-odds/internal/logger"
	"github.com/pfrederiksen/mma-odds/internal/output"
	"github.com/pfrederiksen/mma-odds/internal/pipeline"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNoRecords = 2
)

// DebugEnv enables verbose logging when set to a truthy value,
// equivalent to passing --verbose.
const DebugEnv = "MMA_ODDS_DEBUG"

// errNoRecords flags an otherwise clean run that produced nothing. It is
// returned, not exited on, so the deferred browser and logger teardown in
// runExtract still runs; Execute maps it to ExitNoRecords.
var errNoRecords = errors.New("run produced no records")

var (
	flagConfig  string
	flagCSV     string
	flagJSON    string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mma-odds",
		Short: "Extract upcoming UFC fight odds from fightodds.io",
		Long: `Scrapes the fightodds.io schedule for upcoming UFC events, resolves each
event's fight card and sportsbook odds, and writes a combined CSV plus a
JSON manifest describing the run.`,
		RunE:          runExtract,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file (optional)")
	cmd.Flags().StringVar(&flagCSV, "csv", "", "Override CSV output path")
	cmd.Flags().StringVar(&flagJSON, "json", "", "Override JSON output path")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagCSV != "" {
		cfg.Output.CSVPath = flagCSV
	}
	if flagJSON != "" {
		cfg.Output.JSONPath = flagJSON
	}

	verbose := flagVerbose || debugEnabled()
	log, err := logger.New(cfg.Log, verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	browser, err := fetch.NewBrowser(cfg.Fetch, log)
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	defer browser.Close()

	result, err := pipeline.New(cfg, browser, log).Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := output.WriteCSV(cfg.Output.CSVPath, result.Records, result.Sportsbooks); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	manifest := output.NewManifest(result.Events, result.Records, result.Sportsbooks)
	if err := output.WriteJSON(cfg.Output.JSONPath, manifest); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}

	fmt.Printf("Wrote %d fighter records across %d events to %s and %s\n",
		len(result.Records), len(result.Events), cfg.Output.CSVPath, cfg.Output.JSONPath)

	// A run that produces no records is not a failure, but callers
	// scripting around the tool need to know nothing came out.
	if len(result.Records) == 0 {
		log.Warn("run produced no records",
			zap.Int("events_discovered", len(result.Events)),
			zap.Int("events_skipped", result.EventsSkipped))
		return errNoRecords
	}

	return nil
}

func debugEnabled() bool {
	v := os.Getenv(DebugEnv)
	if v == "" {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}

// exitCode maps a command result to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNoRecords):
		return ExitNoRecords
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, errNoRecords) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
