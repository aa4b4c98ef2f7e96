package http

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/config"
	"campaignpulse/internal/services"
	"campaignpulse/pkg/contracts"
)

func newHealthHandler(t *testing.T, withDataset bool) *HealthHandler {
	t.Helper()
	dir := t.TempDir()
	paths := config.PathsConfig{
		BaseDir:    dir,
		DataFile:   filepath.Join(dir, "campaign_metrics_powerbi.csv"),
		ReportsDir: filepath.Join(dir, "reports"),
	}
	if withDataset {
		require.NoError(t, os.WriteFile(paths.DataFile, []byte("CampaignName\n"), 0644))
	}
	logger := testLogger()
	return NewHealthHandler(services.NewHealthService(paths, logger), logger)
}

func TestHealthHandler(t *testing.T) {
	h := newHealthHandler(t, true)

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus string
	}{
		{"health", h.HealthCheck, services.StatusOK},
		{"ready", h.ReadinessCheck, services.StatusReady},
		{"live", h.LivenessCheck, services.StatusAlive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, tt.handler, "/api/health")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantStatus, decode(t, rec)["status"])
		})
	}
}

func TestReadinessWithoutDataset(t *testing.T) {
	h := newHealthHandler(t, false)

	rec := doGet(t, http.HandlerFunc(h.ReadinessCheck), "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, services.StatusNotReady, body["status"])
	dataset := body["services"].(map[string]interface{})["dataset"].(map[string]interface{})
	assert.Equal(t, services.StatusNotReady, dataset["status"])
}

func TestVersionHandler(t *testing.T) {
	h := newHealthHandler(t, false)

	rec := doGet(t, http.HandlerFunc(h.Version), "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contracts.Version, decode(t, rec)["version"])
}

func TestHealthRoutes(t *testing.T) {
	h := newHealthHandler(t, true)
	routes := h.Routes()

	for _, path := range []string{"/", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			rec := doGet(t, routes, path)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
