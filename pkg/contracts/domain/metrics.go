package domain

import (
	"encoding/json"
	"time"
)

// GroupStats holds the per-group totals and averages used for the
// platform and objective breakdowns.
type GroupStats struct {
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	AvgCTR      float64 `json:"avg_ctr"`
	AvgROI      float64 `json:"avg_roi"`
	AvgROAS     float64 `json:"avg_roas"`
	Count       int     `json:"count"`
}

// PlatformStats is the breakdown entry for one platform.
type PlatformStats = GroupStats

// Breakdown is an insertion-ordered map from group key to stats.
// Keys iterate in first-seen order.
type Breakdown struct {
	keys  []string
	stats map[string]*GroupStats
}

// PlatformBreakdown is the Breakdown keyed by Platform.
type PlatformBreakdown = Breakdown

// NewBreakdown creates an empty breakdown.
func NewBreakdown() *Breakdown {
	return &Breakdown{stats: make(map[string]*GroupStats)}
}

// Entry returns the stats for key, creating an empty entry at the end of
// the key order when absent.
func (b *Breakdown) Entry(key string) *GroupStats {
	if b.stats == nil {
		b.stats = make(map[string]*GroupStats)
	}
	s, ok := b.stats[key]
	if !ok {
		s = &GroupStats{}
		b.stats[key] = s
		b.keys = append(b.keys, key)
	}
	return s
}

// Get returns a copy of the stats for key.
func (b *Breakdown) Get(key string) (GroupStats, bool) {
	if b == nil {
		return GroupStats{}, false
	}
	s, ok := b.stats[key]
	if !ok {
		return GroupStats{}, false
	}
	return *s, true
}

// Keys returns the group keys in first-seen order.
func (b *Breakdown) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of groups.
func (b *Breakdown) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Each calls fn for every group in first-seen order.
func (b *Breakdown) Each(fn func(key string, stats GroupStats)) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		fn(k, *b.stats[k])
	}
}

// NamedGroupStats is the serialized form of one breakdown entry.
type NamedGroupStats struct {
	Name string `json:"name"`
	GroupStats
}

// MarshalJSON encodes the breakdown as an ordered array so key order
// survives serialization.
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	out := make([]NamedGroupStats, 0, b.Len())
	b.Each(func(key string, s GroupStats) {
		out = append(out, NamedGroupStats{Name: key, GroupStats: s})
	})
	return json.Marshal(out)
}

// UnmarshalJSON decodes the ordered array form.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	var in []NamedGroupStats
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.keys = nil
	b.stats = make(map[string]*GroupStats, len(in))
	for _, e := range in {
		*b.Entry(e.Name) = e.GroupStats
	}
	return nil
}

// MonthlyRevenue is one point of the revenue trend.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// MetricsSummary is the portfolio aggregate computed from one load of the
// dataset. It is rebuilt from scratch on every load.
type MetricsSummary struct {
	RowCount         int     `json:"row_count"`
	TotalImpressions float64 `json:"total_impressions"`
	TotalClicks      float64 `json:"total_clicks"`
	TotalSpend       float64 `json:"total_spend"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalConversions float64 `json:"total_conversions"`
	AvgCTR           float64 `json:"avg_ctr"`
	AvgROAS          float64 `json:"avg_roas"`
	AvgROI           float64 `json:"avg_roi"`

	PlatformBreakdown  *PlatformBreakdown `json:"platform_breakdown"`
	ObjectiveBreakdown *Breakdown         `json:"objective_breakdown"`
	MonthlyRevenue     []MonthlyRevenue   `json:"monthly_revenue"`

	GeneratedAt time.Time `json:"generated_at"`
}
