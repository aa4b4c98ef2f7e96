// Package app wires the dashboard server together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, YAML and CAMPAIGN_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Create the loader, dashboard service and health service
//	4. Set up middleware, handlers and the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return app.Run(ctx)
//
// # Graceful Shutdown
//
// Run stops on SIGINT, SIGTERM or context cancellation. In-flight requests
// finish within Server.ShutdownTimeout and telemetry providers are flushed.
//
// # Error Handling
//
// Initialization errors are returned to the caller. The package never calls
// os.Exit.
package app
