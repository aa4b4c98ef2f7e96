package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dashboard"
	"campaignpulse/internal/dataprocessing"
	apperrors "campaignpulse/internal/errors"
	"campaignpulse/internal/exporter"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/pkg/contracts/domain"
)

// RowSource reads the campaign dataset. *dataprocessing.Loader satisfies it.
type RowSource interface {
	Load(ctx context.Context, path string) ([]domain.CampaignRow, error)
}

// Snapshot is the result of one load: the rows and the summary computed
// from them.
type Snapshot struct {
	Rows    []domain.CampaignRow
	Summary *domain.MetricsSummary
}

// DashboardService runs the load, aggregate and present cycle. Nothing is
// cached between calls, so every call reflects the file on disk.
type DashboardService struct {
	source   RowSource
	dataFile string
	builder  *dashboard.Builder
	workbook *exporter.WorkbookWriter
	metrics  *infrastructure.DashboardMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Option configures a DashboardService.
type Option func(*DashboardService)

// WithMetrics records load, build and export instruments on m.
func WithMetrics(m *infrastructure.DashboardMetrics) Option {
	return func(s *DashboardService) { s.metrics = m }
}

// WithTracer wraps loads and builds in spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *DashboardService) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithBuilder replaces the view builder derived from the configuration.
func WithBuilder(b *dashboard.Builder) Option {
	return func(s *DashboardService) {
		if b != nil {
			s.builder = b
		}
	}
}

// NewDashboardService creates the service for cfg.Paths.DataFile.
func NewDashboardService(cfg *config.Config, source RowSource, logger *slog.Logger, opts ...Option) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	s := &DashboardService{
		source:   source,
		dataFile: cfg.Paths.DataFile,
		builder: dashboard.NewBuilder(
			dashboard.OptionsFrom(cfg.Dashboard),
			dashboard.NewFormatter(cfg.Dashboard.Currency),
		),
		workbook: exporter.NewWorkbookWriter(logger),
		tracer:   tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	logger.Info("DashboardService initialized",
		slog.String("data_file", s.dataFile))

	return s
}

// DataFile returns the dataset path the service reads.
func (s *DashboardService) DataFile() string {
	return s.dataFile
}

// Formatter returns the display formatter of the view builder.
func (s *DashboardService) Formatter() *dashboard.Formatter {
	return s.builder.Formatter()
}

// Load reads the dataset and aggregates it. A failed load returns the
// loader's error unchanged and nothing else.
func (s *DashboardService) Load(ctx context.Context) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("dataset.path", s.dataFile)))
	defer span.End()

	start := time.Now()
	rows, err := s.source.Load(ctx, s.dataFile)
	infrastructure.RecordLoadMetrics(ctx, s.metrics, s.sourceName(), len(rows), time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	_, aggSpan := s.tracer.Start(ctx, "dataset.summarize")
	summary := dataprocessing.Summarize(rows)
	aggSpan.SetAttributes(
		attribute.Int("rows", summary.RowCount),
		attribute.Int("platforms", summary.PlatformBreakdown.Len()),
	)
	aggSpan.End()

	s.logger.DebugContext(ctx, "dataset loaded",
		slog.Int("rows", len(rows)),
		slog.Duration("duration", time.Since(start)))

	return &Snapshot{Rows: rows, Summary: summary}, nil
}

// Summary loads the dataset and returns its aggregate.
func (s *DashboardService) Summary(ctx context.Context) (*domain.MetricsSummary, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Summary, nil
}

// View loads the dataset and builds the full dashboard view.
func (s *DashboardService) View(ctx context.Context) (*domain.DashboardView, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.build")
	defer span.End()

	start := time.Now()
	view := s.builder.Build(snap.Rows, snap.Summary)
	if s.metrics != nil {
		s.metrics.DashboardBuildTime.Record(ctx, time.Since(start).Seconds())
	}
	return view, nil
}

// Leaderboard returns the top limit campaigns by ROAS. A non-positive
// limit uses the configured leaderboard size.
func (s *DashboardService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.builder.Leaderboard(snap.Rows, limit), nil
}

// Trends returns impressions, clicks and revenue per period.
func (s *DashboardService) Trends(ctx context.Context, period dataprocessing.Period) ([]dataprocessing.TrendPoint, error) {
	switch period {
	case dataprocessing.Daily, dataprocessing.Weekly, dataprocessing.Monthly:
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown period %q", period), ErrInvalidPeriod)
	}

	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.Trend(snap.Rows, period), nil
}

// ExportCSV writes the campaign rows with derived metrics as CSV.
func (s *DashboardService) ExportCSV(ctx context.Context, w io.Writer) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := exporter.WriteCampaigns(w, snap.Rows); err != nil {
		return apperrors.NewExportError("failed to write campaign CSV", err)
	}
	infrastructure.RecordExport(ctx, s.metrics, "csv")
	return nil
}

// ExportWorkbook writes the multi-sheet XLSX report.
func (s *DashboardService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	snap, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.workbook.Write(w, snap.Rows, snap.Summary); err != nil {
		return apperrors.NewExportError("failed to write workbook", err)
	}
	infrastructure.RecordExport(ctx, s.metrics, "xlsx")
	return nil
}

func (s *DashboardService) sourceName() string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(s.dataFile)), "."); ext != "" {
		return ext
	}
	return "unknown"
}
