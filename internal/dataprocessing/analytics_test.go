package dataprocessing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/pkg/contracts/domain"
)

func row(name, platform string, spend, revenue, roas, roi float64) domain.CampaignRow {
	return domain.CampaignRow{
		CampaignName: name,
		Platform:     platform,
		AdSpend:      spend,
		Revenue:      revenue,
		ROAS:         roas,
		ROI:          roi,
	}
}

func TestSummarizeTwoRowExample(t *testing.T) {
	rows := []domain.CampaignRow{
		row("A", "X", 100, 200, 2, 100),
		row("B", "X", 50, 150, 2, 100),
	}

	s := Summarize(rows)

	assert.Equal(t, 2, s.RowCount)
	assert.Equal(t, 150.0, s.TotalSpend)
	assert.Equal(t, 350.0, s.TotalRevenue)
	assert.Equal(t, 2.0, s.AvgROAS)
	assert.Equal(t, 100.0, s.AvgROI)

	x, ok := s.PlatformBreakdown.Get("X")
	require.True(t, ok)
	assert.Equal(t, domain.PlatformStats{
		Spend:   150,
		Revenue: 350,
		AvgROI:  100,
		AvgROAS: 2,
		Count:   2,
	}, x)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.RowCount)
	assert.Zero(t, s.TotalImpressions)
	assert.Zero(t, s.TotalClicks)
	assert.Zero(t, s.TotalSpend)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.TotalConversions)
	assert.Zero(t, s.AvgCTR)
	assert.Zero(t, s.AvgROAS)
	assert.Zero(t, s.AvgROI)
	assert.Equal(t, 0, s.PlatformBreakdown.Len())
	assert.Empty(t, s.MonthlyRevenue)
}

func TestAverageEmptyIsZeroForEveryField(t *testing.T) {
	fields := append([]domain.Field{}, domain.RequiredColumns...)
	fields = append(fields, domain.Field("NoSuchColumn"))

	for _, f := range fields {
		t.Run(string(f), func(t *testing.T) {
			assert.Equal(t, 0.0, Average(nil, f))
			assert.Equal(t, 0.0, Average([]domain.CampaignRow{}, f))
		})
	}
}

func TestSumUnknownFieldIsZero(t *testing.T) {
	rows := []domain.CampaignRow{row("A", "X", 10, 20, 2, 100)}
	assert.Equal(t, 0.0, Sum(rows, domain.Field("Likes")))
	assert.Equal(t, 0.0, Sum(rows, domain.FieldPlatform))
}

func TestSumIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows := make([]domain.CampaignRow, 200)
	for i := range rows {
		rows[i] = row("c", "p", rng.Float64()*1e4, rng.Float64()*1e5, rng.Float64()*5, rng.Float64()*300-100)
	}

	want := Sum(rows, domain.FieldAdSpend)
	for i := 0; i < 5; i++ {
		shuffled := append([]domain.CampaignRow(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.InDelta(t, want, Sum(shuffled, domain.FieldAdSpend), 1e-6)
	}
}

func TestPlatformSpendPartitionsTotal(t *testing.T) {
	rows := []domain.CampaignRow{
		row("A", "Facebook", 120.5, 0, 0, 0),
		row("B", "Instagram", 80.25, 0, 0, 0),
		row("C", "", 10, 0, 0, 0),
		row("D", "Facebook", 0.25, 0, 0, 0),
		row("E", "LinkedIn", 300, 0, 0, 0),
	}

	s := Summarize(rows)

	var total float64
	count := 0
	s.PlatformBreakdown.Each(func(_ string, st domain.PlatformStats) {
		total += st.Spend
		count += st.Count
	})
	assert.InDelta(t, Sum(rows, domain.FieldAdSpend), total, 1e-9)
	assert.Equal(t, len(rows), count)
	assert.Equal(t, []string{"Facebook", "Instagram", domain.UnknownPlatform, "LinkedIn"}, s.PlatformBreakdown.Keys())
}

func TestNonNumericSpendCountsOnceAsZero(t *testing.T) {
	csv := "CampaignName,Platform,Objective,StartDate,Impressions,Clicks,AdSpend ($),Revenue ($),Conversions,CTR (%),ROAS,ROI (%)\n" +
		"A,X,Sales,2024-01-05,100,10,abc,50,1,10,0,0\n" +
		"B,X,Sales,2024-01-06,100,10,40,50,1,10,1.25,25\n"

	rows := loadString(t, csv, LoaderOptions{})

	s := Summarize(rows)
	x, ok := s.PlatformBreakdown.Get("X")
	require.True(t, ok)
	assert.Equal(t, 40.0, x.Spend)
	assert.Equal(t, 2, x.Count)
}

func TestSummarizeDoesNotMutateRows(t *testing.T) {
	rows := []domain.CampaignRow{
		row("A", "X", 100, 200, 2, 100),
		row("B", "", 50, 150, 3, 200),
	}
	before := append([]domain.CampaignRow(nil), rows...)

	Summarize(rows)
	assert.Equal(t, before, rows)
}

func TestGroupByObjective(t *testing.T) {
	rows := []domain.CampaignRow{
		{Objective: "Sales", AdSpend: 10, ROI: 50},
		{Objective: "Awareness", AdSpend: 5, ROI: -20},
		{Objective: "Sales", AdSpend: 30, ROI: 150},
	}

	b := GroupByObjective(rows)
	assert.Equal(t, []string{"Sales", "Awareness"}, b.Keys())

	sales, _ := b.Get("Sales")
	assert.Equal(t, 40.0, sales.Spend)
	assert.Equal(t, 100.0, sales.AvgROI)
	assert.Equal(t, 2, sales.Count)
}

func TestMonthlyRevenueExcludesUndatedRows(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	rows := []domain.CampaignRow{
		{StartDate: "2024-02-03", Start: feb, HasStart: true, Revenue: 100, AdSpend: 1},
		{StartDate: "not-a-date", Revenue: 999, AdSpend: 1},
		{StartDate: "2024-01-15", Start: jan, HasStart: true, Revenue: 50, AdSpend: 1},
		{StartDate: "2024-01-20", Start: jan.AddDate(0, 0, 5), HasStart: true, Revenue: 25, AdSpend: 1},
	}

	assert.Equal(t, []domain.MonthlyRevenue{
		{Month: "2024-01", Revenue: 75},
		{Month: "2024-02", Revenue: 100},
	}, MonthlyRevenue(rows))

	// the undated row still counts everywhere else
	s := Summarize(rows)
	assert.Equal(t, 1174.0, s.TotalRevenue)
	assert.Equal(t, 4.0, s.TotalSpend)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		row  domain.CampaignRow
		want domain.DerivedMetrics
	}{
		{
			name: "all denominators present",
			row:  domain.CampaignRow{AdSpend: 200, Clicks: 100, Impressions: 10000, Conversions: 4},
			want: domain.DerivedMetrics{CPC: 2, CPM: 20, ConversionRate: 4, CostPerConversion: 50},
		},
		{
			name: "zero denominators yield zero",
			row:  domain.CampaignRow{AdSpend: 200},
			want: domain.DerivedMetrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.row))
		})
	}
}
