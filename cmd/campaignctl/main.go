package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dataprocessing"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/services"
	"campaignpulse/pkg/contracts"
)

// cli holds the persistent flags shared by every subcommand.
type cli struct {
	configFile string
	dataFile   string
	logLevel   string
	strict     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "campaignctl",
		Short: "Campaign performance reports from the command line",
		Long: `campaignctl reads the campaign metrics dataset and prints the same
KPIs, charts, leaderboard and insights the web dashboard shows.

The dataset is located the same way as for the server: the YAML config file,
then CAMPAIGN_* environment variables. --data overrides both.`,
		Version:      contracts.GetVersionInfo().String(),
		SilenceUsage: true,
		// every invocation logs under one trace id
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(infrastructure.EnsureTraceID(cmd.Context()))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "config file (default: config.yaml lookup)")
	flags.StringVarP(&c.dataFile, "data", "d", "", "campaign dataset (.csv or .xlsx)")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&c.strict, "strict", false, "reject rows with invalid values")

	root.AddCommand(
		newSummaryCmd(c),
		newReportCmd(c),
		newTrendsCmd(c),
		newExportCmd(c),
		newSnapshotCmd(c),
	)
	return root
}

// loadConfig applies the persistent flags on top of the file and
// environment configuration.
func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = config.LoadFrom(c.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if c.dataFile != "" {
		abs, err := filepath.Abs(c.dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data file %q: %w", c.dataFile, err)
		}
		cfg.Paths.DataFile = abs
	}
	if c.strict {
		cfg.Dashboard.StrictMode = true
	}
	return cfg, nil
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	return infrastructure.NewLogger(cmd.ErrOrStderr(), c.logLevel)
}

// service builds a dashboard service for one command invocation.
func (c *cli) service(cmd *cobra.Command) (*services.DashboardService, *config.Config, *slog.Logger, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := c.logger(cmd)
	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderOptions{
		Strict: cfg.Dashboard.StrictMode,
		Sheet:  cfg.Dashboard.Sheet,
	})
	return services.NewDashboardService(cfg, loader, logger), cfg, logger, nil
}
