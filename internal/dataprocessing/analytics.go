package dataprocessing

import (
	"sort"
	"time"

	"campaignpulse/pkg/contracts/domain"
)

// Sum adds field across all rows. Unknown or non-numeric fields sum to 0.
func Sum(rows []domain.CampaignRow, field domain.Field) float64 {
	var total float64
	for _, r := range rows {
		total += r.Value(field)
	}
	return total
}

// Average is Sum divided by the row count, or 0 for an empty set.
func Average(rows []domain.CampaignRow, field domain.Field) float64 {
	if len(rows) == 0 {
		return 0
	}
	return Sum(rows, field) / float64(len(rows))
}

// GroupByPlatform builds the per-platform breakdown in one pass. Keys keep
// first-seen order and blank platforms are grouped under domain.UnknownPlatform.
func GroupByPlatform(rows []domain.CampaignRow) *domain.PlatformBreakdown {
	return groupBy(rows, domain.CampaignRow.PlatformKey)
}

// GroupByObjective builds the same breakdown keyed by Objective.
func GroupByObjective(rows []domain.CampaignRow) *domain.Breakdown {
	return groupBy(rows, func(r domain.CampaignRow) string {
		if r.Objective == "" {
			return domain.UnknownPlatform
		}
		return r.Objective
	})
}

func groupBy(rows []domain.CampaignRow, key func(domain.CampaignRow) string) *domain.Breakdown {
	b := domain.NewBreakdown()
	for _, r := range rows {
		s := b.Entry(key(r))
		s.Spend += r.AdSpend
		s.Revenue += r.Revenue
		s.Impressions += r.Impressions
		s.Clicks += r.Clicks
		s.Conversions += r.Conversions
		// running sums until finalized below
		s.AvgCTR += r.CTR
		s.AvgROI += r.ROI
		s.AvgROAS += r.ROAS
		s.Count++
	}
	for _, k := range b.Keys() {
		s := b.Entry(k)
		s.AvgCTR /= float64(s.Count)
		s.AvgROI /= float64(s.Count)
		s.AvgROAS /= float64(s.Count)
	}
	return b
}

// MonthlyRevenue sums Revenue per YYYY-MM of StartDate, ascending by month.
// Rows whose StartDate did not parse are left out.
func MonthlyRevenue(rows []domain.CampaignRow) []domain.MonthlyRevenue {
	byMonth := make(map[string]float64)
	for _, r := range rows {
		key, ok := r.MonthKey()
		if !ok {
			continue
		}
		byMonth[key] += r.Revenue
	}

	out := make([]domain.MonthlyRevenue, 0, len(byMonth))
	for k, v := range byMonth {
		out = append(out, domain.MonthlyRevenue{Month: k, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Derive recomputes the per-campaign efficiency ratios.
func Derive(r domain.CampaignRow) domain.DerivedMetrics {
	return domain.DerivedMetrics{
		CPC:               safeDiv(r.AdSpend, r.Clicks),
		CPM:               safeDiv(r.AdSpend, r.Impressions) * 1000,
		ConversionRate:    safeDiv(r.Conversions, r.Clicks) * 100,
		CostPerConversion: safeDiv(r.AdSpend, r.Conversions),
	}
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Summarize computes the full MetricsSummary for one load. rows is not modified.
func Summarize(rows []domain.CampaignRow) *domain.MetricsSummary {
	return &domain.MetricsSummary{
		RowCount:           len(rows),
		TotalImpressions:   Sum(rows, domain.FieldImpressions),
		TotalClicks:        Sum(rows, domain.FieldClicks),
		TotalSpend:         Sum(rows, domain.FieldAdSpend),
		TotalRevenue:       Sum(rows, domain.FieldRevenue),
		TotalConversions:   Sum(rows, domain.FieldConversions),
		AvgCTR:             Average(rows, domain.FieldCTR),
		AvgROAS:            Average(rows, domain.FieldROAS),
		AvgROI:             Average(rows, domain.FieldROI),
		PlatformBreakdown:  GroupByPlatform(rows),
		ObjectiveBreakdown: GroupByObjective(rows),
		MonthlyRevenue:     MonthlyRevenue(rows),
		GeneratedAt:        time.Now().UTC(),
	}
}
