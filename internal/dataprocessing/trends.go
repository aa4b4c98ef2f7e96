package dataprocessing

import (
	"sort"
	"time"

	"campaignpulse/pkg/contracts/domain"
)

// Period is the bucket width of a trend.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// TrendPoint is the total activity of one period.
type TrendPoint struct {
	Period      string  `json:"period"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Revenue     float64 `json:"revenue"`
}

// bucket returns the label of the period containing t. Weeks end on Sunday
// and are labelled by that Sunday.
func (p Period) bucket(t time.Time) string {
	switch p {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		offset := (7 - int(t.Weekday())) % 7
		return t.AddDate(0, 0, offset).Format("2006-01-02")
	default:
		return t.Format("2006-01")
	}
}

// Trend groups dated rows into periods in ascending order. Periods without
// rows are not emitted.
func Trend(rows []domain.CampaignRow, p Period) []TrendPoint {
	byKey := make(map[string]*TrendPoint)
	for _, r := range rows {
		if !r.HasStart {
			continue
		}
		k := p.bucket(r.Start)
		tp, ok := byKey[k]
		if !ok {
			tp = &TrendPoint{Period: k}
			byKey[k] = tp
		}
		tp.Impressions += r.Impressions
		tp.Clicks += r.Clicks
		tp.Revenue += r.Revenue
	}

	out := make([]TrendPoint, 0, len(byKey))
	for _, tp := range byKey {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
