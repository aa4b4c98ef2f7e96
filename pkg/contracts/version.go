package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the release of the dashboard and CLI.
	Version = "0.3.0"

	// DataFormatVersion identifies the expected dataset columns.
	DataFormatVersion = "powerbi-v1"

	// APIVersion is the version of the JSON API under /api.
	APIVersion = "v1"
)

// Set with -ldflags "-X campaignpulse/pkg/contracts.BuildTime=..." by build.go.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo returns the build information of this binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
		APIVersion:   APIVersion,
	}
}

// String renders the one-line form printed by --version.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s, data %s)",
		v.Version, v.GitCommit, v.BuildTime, v.GoVersion, v.OS, v.Architecture, v.DataFormat)
}
