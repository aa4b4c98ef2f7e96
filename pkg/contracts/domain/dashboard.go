package domain

// ValueKind selects the display format of a value.
type ValueKind string

const (
	KindCount    ValueKind = "count"
	KindCurrency ValueKind = "currency"
	KindPercent  ValueKind = "percent"
	KindRatio    ValueKind = "ratio"
)

// KPITile is one headline card of the dashboard.
type KPITile struct {
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
	Kind      ValueKind `json:"kind"`
	Formatted string    `json:"formatted"`
}

// ChartDataset is a single series of a chart.
type ChartDataset struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors,omitempty"`
}

// Chart is a chart-library agnostic description of one chart.
type Chart struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Charts bundles the three dashboard charts.
type Charts struct {
	PlatformSpend Chart `json:"platform_spend"`
	TopCampaigns  Chart `json:"top_campaigns"`
	RevenueTrend  Chart `json:"revenue_trend"`
}

// LeaderboardRow is one formatted line of the ranked campaign table.
type LeaderboardRow struct {
	Rank      int    `json:"rank"`
	Campaign  string `json:"campaign"`
	Platform  string `json:"platform"`
	Objective string `json:"objective"`
	Spend     string `json:"spend"`
	Revenue   string `json:"revenue"`
	ROAS      string `json:"roas"`
	ROI       string `json:"roi"`
	CTR       string `json:"ctr"`
}

// Cells returns the eight display columns in table order.
func (r LeaderboardRow) Cells() []string {
	return []string{r.Campaign, r.Platform, r.Objective, r.Spend, r.Revenue, r.ROAS, r.ROI, r.CTR}
}

// LeaderboardHeaders are the column titles matching LeaderboardRow.Cells.
var LeaderboardHeaders = []string{"Campaign", "Platform", "Objective", "Spend", "Revenue", "ROAS", "ROI", "CTR"}

// Insight is one narrative statement about the portfolio.
type Insight struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Platform string  `json:"platform,omitempty"`
	Value    float64 `json:"value"`
}

// DashboardView is everything a renderer needs to draw the dashboard.
type DashboardView struct {
	Summary     *MetricsSummary  `json:"summary"`
	KPIs        []KPITile        `json:"kpis"`
	Charts      Charts           `json:"charts"`
	Leaderboard []LeaderboardRow `json:"leaderboard"`
	Insights    []Insight        `json:"insights"`
}
