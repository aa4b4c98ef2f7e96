package config

// Application constants
const (
	AppName     = "Campaign Pulse"
	ServiceName = "campaign-pulse"

	DefaultPort = 8080

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// File paths, relative to Paths.BaseDir
	DefaultDataFile   = "outputs/campaign_metrics_powerbi.csv"
	DefaultReportsDir = "outputs/reports"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "logs/app.log"

	// Dashboard presentation
	DefaultTopCampaigns    = 8
	DefaultLeaderboardSize = 25
	MaxLeaderboardSize     = 500

	// Export file names
	CampaignsCSVName = "campaign_metrics.csv"
	WorkbookName     = "campaign_metrics.xlsx"
	SnapshotName     = "campaign_dashboard.pdf"
)
