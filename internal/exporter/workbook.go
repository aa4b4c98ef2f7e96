package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"campaignpulse/internal/dataprocessing"
	"campaignpulse/pkg/contracts/domain"
)

// Sheet names of the exported workbook, in tab order.
const (
	SheetCampaigns        = "Campaigns"
	SheetPlatformSummary  = "PlatformSummary"
	SheetObjectiveSummary = "ObjectiveSummary"
	SheetDailyTrends      = "DailyTrends"
	SheetWeeklyTrends     = "WeeklyTrends"
	SheetMonthlyTrends    = "MonthlyTrends"
)

var (
	platformHeaders = []string{
		"Platform", "TotalImpressions", "TotalClicks", "TotalSpend", "TotalRevenue",
		"AvgCTR", "AvgROAS", "AvgROI", "TotalConversions", "Campaigns",
	}
	objectiveHeaders = []string{"Objective", "TotalSpend", "TotalRevenue", "AvgROI", "AvgROAS", "Campaigns"}
	trendHeaders     = []string{"StartDate", "Impressions", "Revenue", "Clicks"}
)

// WorkbookWriter builds the XLSX report.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a WorkbookWriter.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "workbook_writer"))}
}

// Build assembles the workbook in memory. The caller closes the file.
// A nil summary is computed from rows.
func (w *WorkbookWriter) Build(rows []domain.CampaignRow, summary *domain.MetricsSummary) (*excelize.File, error) {
	if summary == nil {
		summary = dataprocessing.Summarize(rows)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetCampaigns); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	sheets := []struct {
		name    string
		headers []string
		records [][]interface{}
	}{
		{SheetCampaigns, CampaignHeaders(), campaignCells(rows)},
		{SheetPlatformSummary, platformHeaders, platformCells(summary.PlatformBreakdown)},
		{SheetObjectiveSummary, objectiveHeaders, objectiveCells(summary.ObjectiveBreakdown)},
		{SheetDailyTrends, trendHeaders, trendCells(dataprocessing.Trend(rows, dataprocessing.Daily))},
		{SheetWeeklyTrends, trendHeaders, trendCells(dataprocessing.Trend(rows, dataprocessing.Weekly))},
		{SheetMonthlyTrends, trendHeaders, trendCells(dataprocessing.Trend(rows, dataprocessing.Monthly))},
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.headers, s.records, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	w.logger.Debug("workbook built",
		slog.Int("rows", len(rows)),
		slog.Int("sheets", len(sheets)))

	return f, nil
}

// Write streams the workbook to dst.
func (w *WorkbookWriter) Write(dst io.Writer, rows []domain.CampaignRow, summary *domain.MetricsSummary) error {
	f, err := w.Build(rows, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(dst); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook to path.
func (w *WorkbookWriter) Save(path string, rows []domain.CampaignRow, summary *domain.MetricsSummary) error {
	f, err := w.Build(rows, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	w.logger.Info("workbook saved", slog.String("path", path))
	return nil
}

func writeSheet(f *excelize.File, name string, headers []string, records [][]interface{}, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", last, 16); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &rec); err != nil {
			return err
		}
	}

	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func campaignCells(rows []domain.CampaignRow) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		d := dataprocessing.Derive(r)
		out[i] = []interface{}{
			r.CampaignName, r.Platform, r.Objective, r.StartDate,
			r.Impressions, r.Clicks, r.AdSpend, r.Revenue, r.Conversions,
			r.CTR, r.ROAS, r.ROI,
			round2(d.CPC), round2(d.CPM), round2(d.ConversionRate), round2(d.CostPerConversion),
		}
	}
	return out
}

func platformCells(bd *domain.PlatformBreakdown) [][]interface{} {
	out := make([][]interface{}, 0, bd.Len())
	bd.Each(func(platform string, s domain.PlatformStats) {
		out = append(out, []interface{}{
			platform, s.Impressions, s.Clicks, round2(s.Spend), round2(s.Revenue),
			round2(s.AvgCTR), round2(s.AvgROAS), round2(s.AvgROI), s.Conversions, s.Count,
		})
	})
	return out
}

func objectiveCells(bd *domain.Breakdown) [][]interface{} {
	out := make([][]interface{}, 0, bd.Len())
	bd.Each(func(objective string, s domain.GroupStats) {
		out = append(out, []interface{}{
			objective, round2(s.Spend), round2(s.Revenue), round2(s.AvgROI), round2(s.AvgROAS), s.Count,
		})
	})
	return out
}

func trendCells(points []dataprocessing.TrendPoint) [][]interface{} {
	out := make([][]interface{}, len(points))
	for i, p := range points {
		out[i] = []interface{}{p.Period, p.Impressions, p.Revenue, p.Clicks}
	}
	return out
}
