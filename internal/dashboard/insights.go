package dashboard

import (
	"fmt"

	"campaignpulse/pkg/contracts/domain"
)

// Insight titles in display order.
const (
	TitleROILeader  = "ROI Leader"
	TitleROAS       = "ROAS Standout"
	TitleSpendFocus = "Spend Focus"
	TitleEfficiency = "Overall Efficiency"
	NoPlatformData  = "No platform data"
)

// best is the running winner of a linear scan over the breakdown.
type best struct {
	platform string
	value    float64
	found    bool
}

// maxBy scans the breakdown in first-seen order. Only a strictly greater
// value replaces the current winner, so ties go to the earlier platform.
func maxBy(bd *domain.PlatformBreakdown, metric func(domain.PlatformStats) float64) best {
	var b best
	bd.Each(func(platform string, stats domain.PlatformStats) {
		v := metric(stats)
		if !b.found || v > b.value {
			b = best{platform: platform, value: v, found: true}
		}
	})
	return b
}

// Insights returns the four narrative statements. Without platform data
// the three platform insights carry an empty platform, value 0 and the
// NoPlatformData text.
func Insights(s *domain.MetricsSummary, f *Formatter) []domain.Insight {
	if s == nil {
		s = &domain.MetricsSummary{}
	}
	bd := s.PlatformBreakdown

	roi := maxBy(bd, func(p domain.PlatformStats) float64 { return p.AvgROI })
	roas := maxBy(bd, func(p domain.PlatformStats) float64 { return p.AvgROAS })
	spend := maxBy(bd, func(p domain.PlatformStats) float64 { return p.Spend })

	return []domain.Insight{
		platformInsight(TitleROILeader, roi, func(b best) string {
			return fmt.Sprintf("%s averages %s ROI.", b.platform, f.Percent(b.value))
		}),
		platformInsight(TitleROAS, roas, func(b best) string {
			return fmt.Sprintf("%s delivers ROAS of %s.", b.platform, f.Ratio(b.value))
		}),
		platformInsight(TitleSpendFocus, spend, func(b best) string {
			return fmt.Sprintf("%s accounts for %s in spend.", b.platform, f.Currency(b.value))
		}),
		{
			Title: TitleEfficiency,
			Body:  fmt.Sprintf("Portfolio averages %s ROI and ROAS %s.", f.Percent(s.AvgROI), f.Ratio(s.AvgROAS)),
			Value: s.AvgROI,
		},
	}
}

func platformInsight(title string, b best, body func(best) string) domain.Insight {
	if !b.found {
		return domain.Insight{Title: title, Body: NoPlatformData + "."}
	}
	return domain.Insight{Title: title, Body: body(b), Platform: b.platform, Value: b.value}
}
