package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campaignpulse/pkg/contracts/domain"
)

func dated(day string, impressions, clicks, revenue float64) domain.CampaignRow {
	t, ok := ParseDate(day)
	return domain.CampaignRow{StartDate: day, Start: t, HasStart: ok, Impressions: impressions, Clicks: clicks, Revenue: revenue}
}

func TestTrend(t *testing.T) {
	rows := []domain.CampaignRow{
		dated("2024-03-04", 100, 10, 5), // Monday
		dated("2024-03-10", 200, 20, 7), // Sunday, same week
		dated("2024-03-11", 50, 5, 1),   // next Monday
		dated("2024-04-01", 10, 1, 2),
		dated("garbage", 999, 999, 999),
	}

	tests := []struct {
		period Period
		want   []TrendPoint
	}{
		{
			period: Daily,
			want: []TrendPoint{
				{Period: "2024-03-04", Impressions: 100, Clicks: 10, Revenue: 5},
				{Period: "2024-03-10", Impressions: 200, Clicks: 20, Revenue: 7},
				{Period: "2024-03-11", Impressions: 50, Clicks: 5, Revenue: 1},
				{Period: "2024-04-01", Impressions: 10, Clicks: 1, Revenue: 2},
			},
		},
		{
			period: Weekly,
			want: []TrendPoint{
				{Period: "2024-03-10", Impressions: 300, Clicks: 30, Revenue: 12},
				{Period: "2024-03-17", Impressions: 50, Clicks: 5, Revenue: 1},
				{Period: "2024-04-07", Impressions: 10, Clicks: 1, Revenue: 2},
			},
		},
		{
			period: Monthly,
			want: []TrendPoint{
				{Period: "2024-03", Impressions: 350, Clicks: 35, Revenue: 13},
				{Period: "2024-04", Impressions: 10, Clicks: 1, Revenue: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(rows, tt.period))
		})
	}
}

func TestTrendEmpty(t *testing.T) {
	assert.Empty(t, Trend(nil, Monthly))
}

func TestWeeklyBucketEndsOnSunday(t *testing.T) {
	sunday := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-30", Weekly.bucket(sunday))
	assert.Equal(t, "2024-06-30", Weekly.bucket(sunday.AddDate(0, 0, -6)))
	assert.Equal(t, "2024-07-07", Weekly.bucket(sunday.AddDate(0, 0, 1)))
}
