package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"campaignpulse/internal/app"
	"campaignpulse/internal/config"
	"campaignpulse/internal/dashboard"
	"campaignpulse/internal/dataprocessing"
	apperrors "campaignpulse/internal/errors"
	"campaignpulse/internal/exporter"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/internal/services"
	"campaignpulse/internal/snapshot"
	"campaignpulse/internal/validation"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadFailed prints the dataset diagnostic and returns err for the exit code.
func loadFailed(cmd *cobra.Command, logger *slog.Logger, err error) error {
	infrastructure.WithError(logger, err).ErrorContext(cmd.Context(), "dashboard unavailable")
	r := dashboard.NewTerminalRenderer(cmd.ErrOrStderr(), nil)
	fmt.Fprint(cmd.ErrOrStderr(), r.RenderError(apperrors.DataUnavailableDetail))
	return err
}

func newSummaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the aggregated metrics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, logger, err := c.service(cmd)
			if err != nil {
				return err
			}
			summary, err := svc.Summary(cmd.Context())
			if err != nil {
				return loadFailed(cmd, logger, err)
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func newReportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render the dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, logger, err := c.service(cmd)
			if err != nil {
				return err
			}
			view, err := svc.View(cmd.Context())
			if err != nil {
				return loadFailed(cmd, logger, err)
			}
			r := dashboard.NewTerminalRenderer(cmd.OutOrStdout(), svc.Formatter())
			_, err = fmt.Fprint(cmd.OutOrStdout(), r.Render(view))
			return err
		},
	}
}

func newTrendsCmd(c *cli) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Print impressions, clicks and revenue per period as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, logger, err := c.service(cmd)
			if err != nil {
				return err
			}
			points, err := svc.Trends(cmd.Context(), dataprocessing.Period(strings.ToLower(period)))
			if err != nil {
				if errors.Is(err, services.ErrInvalidPeriod) {
					return err
				}
				return loadFailed(cmd, logger, err)
			}
			return writeJSON(cmd.OutOrStdout(), points)
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", string(dataprocessing.Monthly), "daily, weekly or monthly")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the campaign table to the reports directory",
		Long: `Writes the campaigns with their derived metrics. csv produces
` + config.CampaignsCSVName + `; xlsx produces ` + config.WorkbookName + ` with
campaign, platform, objective and monthly sheets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported export format %q: use csv or xlsx", format)
			}

			svc, cfg, logger, err := c.service(cmd)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Paths.ReportsDir
			}
			if err := validation.NewFileValidator(logger).ValidateOutputDirectory(outDir); err != nil {
				return err
			}

			snap, err := svc.Load(cmd.Context())
			if err != nil {
				return loadFailed(cmd, logger, err)
			}

			var path string
			switch format {
			case "csv":
				path, err = exporter.NewCSVWriter(outDir, logger).ExportCampaigns(snap.Rows)
			case "xlsx":
				path = filepath.Join(outDir, config.WorkbookName)
				err = exporter.NewWorkbookWriter(logger).Save(path, snap.Rows, snap.Summary)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: reports directory)")
	return cmd
}

func newSnapshotCmd(c *cli) *cobra.Command {
	var (
		url       string
		out       string
		chrome    string
		landscape bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the dashboard page to PDF with headless Chrome",
		Long: `Prints the dashboard to PDF. Without --url a private server is started
on a loopback port for the duration of the capture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := c.logger(cmd)

			if out == "" {
				out = cfg.ReportPath(config.SnapshotName)
			}
			if err := validation.NewFileValidator(logger).ValidateOutputDirectory(filepath.Dir(out)); err != nil {
				return err
			}

			ctx := cmd.Context()
			if url == "" {
				local, shutdown, err := serveLocal(ctx, cfg, logger)
				if err != nil {
					return err
				}
				defer shutdown()
				url = local
			}

			s := snapshot.New(snapshot.Options{
				Timeout:   timeout,
				Landscape: landscape,
				ExecPath:  chrome,
			}, logger)
			if err := s.Save(ctx, url, out); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&url, "url", "u", "", "dashboard URL of a running server")
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF path (default: reports directory)")
	cmd.Flags().StringVar(&chrome, "chrome", "", "Chrome or Chromium binary")
	cmd.Flags().BoolVar(&landscape, "landscape", true, "landscape orientation")
	cmd.Flags().DurationVar(&timeout, "timeout", snapshot.DefaultTimeout, "capture timeout")
	return cmd
}

// serveLocal runs the dashboard on a loopback port and returns its page URL
// and a function that stops it.
func serveLocal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (string, func(), error) {
	cfg.Security.RateLimit.Enabled = false
	cfg.Telemetry.MetricExporter = "none"
	cfg.Telemetry.TraceExporter = "none"

	application, err := app.New(cfg, logger)
	if err != nil {
		return "", nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()

	shutdown := func() {
		cancel()
		if err := <-done; err != nil {
			logger.Warn("local server stopped with error", slog.String("error", err.Error()))
		}
	}
	return "http://" + ln.Addr().String() + "/", shutdown, nil
}
