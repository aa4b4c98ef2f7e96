package dashboard

import "campaignpulse/pkg/contracts/domain"

// KPI labels in display order.
const (
	LabelImpressions = "Total Impressions"
	LabelClicks      = "Total Clicks"
	LabelSpend       = "Total Ad Spend"
	LabelRevenue     = "Total Revenue"
	LabelCTR         = "Average CTR"
	LabelROAS        = "Average ROAS"
	LabelROI         = "Average ROI"
	LabelConversions = "Total Conversions"
)

// KPIs returns the eight headline tiles. A nil summary yields zero tiles
// with the same labels.
func KPIs(s *domain.MetricsSummary, f *Formatter) []domain.KPITile {
	if s == nil {
		s = &domain.MetricsSummary{}
	}
	tiles := []domain.KPITile{
		{Label: LabelImpressions, Value: s.TotalImpressions, Kind: domain.KindCount},
		{Label: LabelClicks, Value: s.TotalClicks, Kind: domain.KindCount},
		{Label: LabelSpend, Value: s.TotalSpend, Kind: domain.KindCurrency},
		{Label: LabelRevenue, Value: s.TotalRevenue, Kind: domain.KindCurrency},
		{Label: LabelCTR, Value: s.AvgCTR, Kind: domain.KindPercent},
		{Label: LabelROAS, Value: s.AvgROAS, Kind: domain.KindRatio},
		{Label: LabelROI, Value: s.AvgROI, Kind: domain.KindPercent},
		{Label: LabelConversions, Value: s.TotalConversions, Kind: domain.KindCount},
	}
	for i := range tiles {
		tiles[i].Formatted = f.Format(tiles[i].Kind, tiles[i].Value)
	}
	return tiles
}
