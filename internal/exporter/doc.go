// Package exporter writes the campaign dataset and its aggregates to files
// analysts open elsewhere.
//
// CSVWriter: core CSV writing with headers, streaming and a UTF-8 BOM for
// Excel compatibility. The campaign export adds the derived CPC, CPM,
// conversion rate and cost per conversion columns.
//
// WorkbookWriter: an XLSX workbook with the campaign rows plus platform,
// objective and daily/weekly/monthly trend sheets.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(cfg.Paths.ReportsDir, logger)
//	path, err := csvWriter.ExportCampaigns(rows)
//
//	book := exporter.NewWorkbookWriter(logger)
//	err = book.Write(w, rows, summary)
package exporter
