// Package http implements the HTTP handlers of the campaign dashboard.
//
// Handlers stay thin: they validate query parameters, call the service
// layer and render the result. JSON responses use the envelope
//
//	{"status": "success", "data": ...}
//
// and every failure goes through errors.ErrorHandler, which answers with an
// RFC 7807 problem document. A dataset that cannot be loaded always maps to
// the same /errors/data/unavailable problem with HTTP 503.
//
// The HTML page is rendered server side from an embedded template. Chart
// data is embedded as JSON and drawn by Chart.js in the browser.
package http
