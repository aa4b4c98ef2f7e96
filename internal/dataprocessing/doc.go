// Package dataprocessing loads the campaign dataset and aggregates it.
//
// The Loader reads a CSV or XLSX file with a header row into typed
// domain.CampaignRow values, coercing every numeric cell once at load time.
// Cells that are blank or not a number read as 0 unless the loader runs in
// strict mode.
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoaderOptions{})
//	rows, err := loader.Load(ctx, "outputs/campaign_metrics_powerbi.csv")
//	if err != nil {
//	    return err
//	}
//	summary := dataprocessing.Summarize(rows)
//
// Aggregation never fails and never mutates its input. Averages over an
// empty row set are 0 and the per-platform breakdown keeps the order in
// which platforms first appear.
package dataprocessing
