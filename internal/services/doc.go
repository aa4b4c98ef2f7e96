// Package services holds the business logic between the HTTP and CLI
// surfaces and the data packages.
//
// DashboardService runs one cycle per call: load the dataset through a
// RowSource, aggregate it with dataprocessing, then hand the rows and
// summary to the dashboard builder or an exporter. No state survives
// between calls, so concurrent requests never share a load.
//
// HealthService answers the health, readiness and liveness probes.
// Readiness requires a readable dataset and a writable reports directory.
//
// Load failures are returned unchanged as *errors.AppError values so the
// transport layer can turn every one of them into the same diagnostic.
package services
