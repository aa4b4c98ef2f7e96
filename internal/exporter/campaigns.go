package exporter

import (
	"fmt"
	"io"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dataprocessing"
	"campaignpulse/pkg/contracts/domain"
)

// Derived column headers appended after the source columns.
const (
	HeaderCPC               = "CPC ($)"
	HeaderCPM               = "CPM ($)"
	HeaderConversionRate    = "ConversionRate (%)"
	HeaderCostPerConversion = "CostPerConversion ($)"
)

// CampaignHeaders returns the source columns followed by the derived ones.
func CampaignHeaders() []string {
	headers := make([]string, 0, len(domain.RequiredColumns)+4)
	for _, f := range domain.RequiredColumns {
		headers = append(headers, string(f))
	}
	return append(headers, HeaderCPC, HeaderCPM, HeaderConversionRate, HeaderCostPerConversion)
}

// CampaignRecord renders one row in CampaignHeaders order.
func CampaignRecord(r domain.CampaignRow) []string {
	d := dataprocessing.Derive(r)
	return []string{
		r.CampaignName,
		r.Platform,
		r.Objective,
		r.StartDate,
		formatNumber(r.Impressions),
		formatNumber(r.Clicks),
		formatNumber(r.AdSpend),
		formatNumber(r.Revenue),
		formatNumber(r.Conversions),
		formatNumber(r.CTR),
		formatNumber(r.ROAS),
		formatNumber(r.ROI),
		formatFloat(d.CPC),
		formatFloat(d.CPM),
		formatFloat(d.ConversionRate),
		formatFloat(d.CostPerConversion),
	}
}

// CampaignRecords renders every row.
func CampaignRecords(rows []domain.CampaignRow) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = CampaignRecord(r)
	}
	return records
}

// WriteCampaigns streams the campaign export, BOM first, to dst.
func WriteCampaigns(dst io.Writer, rows []domain.CampaignRow) error {
	return WriteTo(dst, WriteOptions{
		Headers:   CampaignHeaders(),
		Records:   CampaignRecords(rows),
		BOMPrefix: true,
	})
}

// ExportCampaigns writes the campaign export into the reports directory and
// returns its path.
func (w *CSVWriter) ExportCampaigns(rows []domain.CampaignRow) (string, error) {
	path := w.resolvePath(config.CampaignsCSVName)
	err := w.WriteCSV(path, WriteOptions{
		Headers:   CampaignHeaders(),
		Records:   CampaignRecords(rows),
		BOMPrefix: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export campaigns: %w", err)
	}
	return path, nil
}
