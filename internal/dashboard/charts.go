package dashboard

import (
	"sort"

	"campaignpulse/pkg/contracts/domain"
)

// Chart identifiers, matching the canvas ids of the HTML page.
const (
	ChartPlatformSpend = "platformSpendChart"
	ChartTopCampaigns  = "topCampaignsChart"
	ChartRevenueTrend  = "revenueTrendChart"
)

// Palette used by the charts. Doughnut slices cycle through PlatformColors.
var (
	PlatformColors = []string{"#5e4ae3", "#7b6cf6", "#ffb347"}
	BarColor       = "#7b6cf6"
	LineColor      = "#ffb347"
	TextColor      = "#dbe1ff"
)

// RankByROAS returns up to n rows ordered by ROAS descending. Rows with
// equal ROAS keep their input order. The input slice is not modified.
// n <= 0 returns every row.
func RankByROAS(rows []domain.CampaignRow, n int) []domain.CampaignRow {
	ranked := make([]domain.CampaignRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ROAS > ranked[j].ROAS
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PlatformSpendChart is the doughnut of spend per platform in breakdown
// order.
func PlatformSpendChart(s *domain.MetricsSummary) domain.Chart {
	var bd *domain.PlatformBreakdown
	if s != nil {
		bd = s.PlatformBreakdown
	}

	labels := make([]string, 0, bd.Len())
	data := make([]float64, 0, bd.Len())
	colors := make([]string, 0, bd.Len())
	bd.Each(func(platform string, stats domain.PlatformStats) {
		colors = append(colors, PlatformColors[len(labels)%len(PlatformColors)])
		labels = append(labels, platform)
		data = append(data, stats.Spend)
	})

	return domain.Chart{
		ID:     ChartPlatformSpend,
		Type:   "doughnut",
		Title:  "Spend by Platform",
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: "Spend", Data: data, Colors: colors},
		},
	}
}

// TopCampaignsChart is the bar chart of the n best campaigns by ROAS.
func TopCampaignsChart(rows []domain.CampaignRow, n int) domain.Chart {
	top := RankByROAS(rows, n)

	labels := make([]string, len(top))
	data := make([]float64, len(top))
	for i, r := range top {
		labels[i] = r.CampaignName
		data[i] = r.ROAS
	}

	return domain.Chart{
		ID:     ChartTopCampaigns,
		Type:   "bar",
		Title:  "Top Campaigns by ROAS",
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: "ROAS", Data: data, Colors: []string{BarColor}},
		},
	}
}

// RevenueTrendChart is the line chart of revenue per start month.
func RevenueTrendChart(s *domain.MetricsSummary) domain.Chart {
	var months []domain.MonthlyRevenue
	if s != nil {
		months = s.MonthlyRevenue
	}

	labels := make([]string, len(months))
	data := make([]float64, len(months))
	for i, m := range months {
		labels[i] = m.Month
		data[i] = m.Revenue
	}

	return domain.Chart{
		ID:     ChartRevenueTrend,
		Type:   "line",
		Title:  "Monthly Revenue",
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: "Revenue", Data: data, Colors: []string{LineColor}},
		},
	}
}
