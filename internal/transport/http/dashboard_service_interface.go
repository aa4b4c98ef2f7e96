package http

import (
	"context"
	"io"

	"campaignpulse/internal/dataprocessing"
	"campaignpulse/pkg/contracts/domain"
)

// DashboardServiceInterface is what the dashboard, export and page handlers
// need from the service layer. *services.DashboardService implements it.
type DashboardServiceInterface interface {
	View(ctx context.Context) (*domain.DashboardView, error)
	Summary(ctx context.Context) (*domain.MetricsSummary, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
	Trends(ctx context.Context, period dataprocessing.Period) ([]dataprocessing.TrendPoint, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportWorkbook(ctx context.Context, w io.Writer) error
}
