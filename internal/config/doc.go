// Package config provides centralized configuration for Campaign Pulse.
//
// Values are layered, lowest priority first:
//
//  1. Default()
//  2. A YAML file (CAMPAIGN_CONFIG_FILE, config.yaml or configs/config.yaml)
//  3. Environment variables with the CAMPAIGN_ prefix
//
// Environment variables follow the struct nesting:
//
//	CAMPAIGN_SERVER_PORT=9090
//	CAMPAIGN_PATHS_DATA_FILE=/srv/data/campaign_metrics_powerbi.csv
//	CAMPAIGN_DASHBOARD_STRICT_MODE=true
//	CAMPAIGN_TELEMETRY_TRACE_EXPORTER=stdout
//
// Relative paths are resolved against Paths.BaseDir, which defaults to the
// working directory.
package config
