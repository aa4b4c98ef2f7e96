package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dataprocessing"
	apperrors "campaignpulse/internal/errors"
	"campaignpulse/internal/infrastructure"
	"campaignpulse/pkg/contracts/domain"
)

const datasetCSV = `CampaignName,Platform,Objective,StartDate,Impressions,Clicks,AdSpend ($),Revenue ($),Conversions,CTR (%),ROAS,ROI (%)
Spring Sale,Facebook,Conversions,2024-01-15,10000,500,100,300,20,5,3,200
Brand Push,Google,Awareness,2024-02-03,20000,400,50,50,5,2,1,0
Retarget,Facebook,Conversions,2024-02-20,5000,250,80,320,16,5,4,300
`

type mockRowSource struct {
	mock.Mock
}

func (m *mockRowSource) Load(ctx context.Context, path string) ([]domain.CampaignRow, error) {
	args := m.Called(ctx, path)
	rows, _ := args.Get(0).([]domain.CampaignRow)
	return rows, args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig(t *testing.T, data string) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.BaseDir = dir
	cfg.Paths.DataFile = filepath.Join(dir, "campaign_metrics_powerbi.csv")
	cfg.Paths.ReportsDir = filepath.Join(dir, "reports")
	if data != "" {
		require.NoError(t, os.WriteFile(cfg.Paths.DataFile, []byte(data), 0644))
	}
	return cfg
}

func newFileService(t *testing.T, data string, opts ...Option) *DashboardService {
	t.Helper()
	cfg := testConfig(t, data)
	loader := dataprocessing.NewLoader(quietLogger(), dataprocessing.LoaderOptions{})
	return NewDashboardService(cfg, loader, quietLogger(), opts...)
}

func TestDashboardServiceLoad(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Rows, 3)

	assert.Equal(t, 3, snap.Summary.RowCount)
	assert.InDelta(t, 230.0, snap.Summary.TotalSpend, 1e-9)
	assert.InDelta(t, 670.0, snap.Summary.TotalRevenue, 1e-9)
	assert.Equal(t, []string{"Facebook", "Google"}, snap.Summary.PlatformBreakdown.Keys())
}

func TestDashboardServiceView(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	view, err := svc.View(context.Background())
	require.NoError(t, err)

	require.Len(t, view.KPIs, 8)
	assert.Equal(t, "$230", view.KPIs[2].Formatted)
	require.Len(t, view.Leaderboard, 3)
	assert.Equal(t, "Retarget", view.Leaderboard[0].Campaign)
	assert.Equal(t, []string{"2024-01", "2024-02"}, view.Charts.RevenueTrend.Labels)
	require.Len(t, view.Insights, 4)
	assert.Equal(t, "Facebook", view.Insights[0].Platform)
}

func TestDashboardServiceReloadsEveryCall(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.RowCount)

	lines := strings.SplitN(datasetCSV, "\n", 3)
	require.NoError(t, os.WriteFile(svc.DataFile(), []byte(lines[0]+"\n"+lines[1]+"\n"), 0644))

	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.RowCount)
}

func TestDashboardServiceMissingDataset(t *testing.T) {
	svc := newFileService(t, "")

	_, err := svc.View(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDashboardServicePassesLoaderErrorThrough(t *testing.T) {
	cfg := testConfig(t, "")
	src := &mockRowSource{}
	loadErr := apperrors.NewParsingError("bad quote", nil)
	src.On("Load", mock.Anything, cfg.Paths.DataFile).Return(nil, loadErr)

	svc := NewDashboardService(cfg, src, quietLogger())

	_, err := svc.Leaderboard(context.Background(), 5)
	assert.Same(t, loadErr, err)
	src.AssertExpectations(t)
}

func TestDashboardServiceLeaderboard(t *testing.T) {
	cfg := testConfig(t, "")
	rows := []domain.CampaignRow{
		{CampaignName: "A", Platform: "X", ROAS: 1},
		{CampaignName: "B", Platform: "X", ROAS: 3},
		{CampaignName: "C", Platform: "Y", ROAS: 3},
		{CampaignName: "D", Platform: "Y", ROAS: 2},
	}
	src := &mockRowSource{}
	src.On("Load", mock.Anything, cfg.Paths.DataFile).Return(rows, nil)

	svc := NewDashboardService(cfg, src, quietLogger())

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"top two keeps tie order", 2, []string{"B", "C"}},
		{"limit beyond rows", 10, []string{"B", "C", "D", "A"}},
		{"non-positive uses configured size", 0, []string{"B", "C", "D", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := svc.Leaderboard(context.Background(), tt.limit)
			require.NoError(t, err)

			got := make([]string, len(board))
			for i, r := range board {
				got[i] = r.Campaign
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, board[0].Rank)
		})
	}
}

func TestDashboardServiceTrends(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	points, err := svc.Trends(context.Background(), dataprocessing.Monthly)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-02", points[1].Period)
	assert.InDelta(t, 370.0, points[1].Revenue, 1e-9)

	_, err = svc.Trends(context.Background(), dataprocessing.Period("hourly"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestDashboardServiceExportCSV(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, "CampaignName", records[0][0])
}

func TestDashboardServiceExportWorkbook(t *testing.T) {
	svc := newFileService(t, datasetCSV)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportWorkbook(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "PlatformSummary")
}

func TestDashboardServiceExportFailsOnMissingDataset(t *testing.T) {
	svc := newFileService(t, "")

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing is written when the load fails")
}

func TestDashboardServiceTelemetry(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
		_ = tp.Shutdown(context.Background())
	})

	metrics, err := infrastructure.CreateDashboardMetrics(mp.Meter("test"))
	require.NoError(t, err)

	svc := newFileService(t, datasetCSV, WithMetrics(metrics), WithTracer(tp.Tracer("test")))

	_, err = svc.View(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.ExportCSV(context.Background(), io.Discard))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	seen := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			seen[m.Name] = true
		}
	}
	assert.True(t, seen["dataset_loads_total"])
	assert.True(t, seen["dashboard_build_duration_seconds"])
	assert.True(t, seen["exports_total"])

	names := map[string]int{}
	for _, s := range spans.Ended() {
		names[s.Name()]++
	}
	assert.Equal(t, 2, names["dataset.load"])
	assert.Equal(t, 2, names["dataset.summarize"])
	assert.Equal(t, 1, names["dashboard.build"])
}
