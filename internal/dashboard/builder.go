package dashboard

import (
	"campaignpulse/internal/config"
	"campaignpulse/pkg/contracts/domain"
)

// Options sizes the ranked sections of the view.
type Options struct {
	TopCampaigns    int
	LeaderboardSize int
}

// OptionsFrom reads the sizes from the dashboard configuration.
func OptionsFrom(cfg config.DashboardConfig) Options {
	return Options{
		TopCampaigns:    cfg.TopCampaigns,
		LeaderboardSize: cfg.LeaderboardSize,
	}
}

// Builder assembles a DashboardView from rows and their summary.
type Builder struct {
	opts Options
	fmt  *Formatter
}

// NewBuilder creates a Builder. Non-positive sizes take the defaults and a
// nil formatter formats US dollars.
func NewBuilder(opts Options, f *Formatter) *Builder {
	if opts.TopCampaigns <= 0 {
		opts.TopCampaigns = config.DefaultTopCampaigns
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = config.DefaultLeaderboardSize
	}
	if f == nil {
		f = DefaultFormatter()
	}
	return &Builder{opts: opts, fmt: f}
}

// Formatter returns the formatter used by the builder.
func (b *Builder) Formatter() *Formatter {
	return b.fmt
}

// Build runs every adapter in a fixed order: KPIs, charts, leaderboard,
// insights. rows and summary are only read.
func (b *Builder) Build(rows []domain.CampaignRow, summary *domain.MetricsSummary) *domain.DashboardView {
	return &domain.DashboardView{
		Summary: summary,
		KPIs:    KPIs(summary, b.fmt),
		Charts: domain.Charts{
			PlatformSpend: PlatformSpendChart(summary),
			TopCampaigns:  TopCampaignsChart(rows, b.opts.TopCampaigns),
			RevenueTrend:  RevenueTrendChart(summary),
		},
		Leaderboard: Leaderboard(rows, b.opts.LeaderboardSize, b.fmt),
		Insights:    Insights(summary, b.fmt),
	}
}

// Leaderboard formats the top limit campaigns. limit <= 0 uses the
// configured size.
func (b *Builder) Leaderboard(rows []domain.CampaignRow, limit int) []domain.LeaderboardRow {
	if limit <= 0 {
		limit = b.opts.LeaderboardSize
	}
	return Leaderboard(rows, limit, b.fmt)
}
