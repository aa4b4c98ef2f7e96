package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTelInitialization(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")

	providers, err := InitializeOTel(nil, logger)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider, "default trace exporter is none")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := CreateDashboardMetrics(providers.Meter)
	require.NoError(t, err)
	RecordLoadMetrics(context.Background(), metrics, "csv", 12, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dataset_loads_total")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelDisabled(t *testing.T) {
	var buf bytes.Buffer
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "test",
		TraceExporter:  "none",
		MetricExporter: "none",
		EnableMetrics:  true,
	}, NewLogger(&buf, "error"))
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Tracer)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelUnsupportedExporter(t *testing.T) {
	var buf bytes.Buffer
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "jaeger"}, NewLogger(&buf, "error"))
	assert.Error(t, err)

	_, err = InitializeOTel(&OTelConfig{MetricExporter: "statsd", EnableMetrics: true}, NewLogger(&buf, "error"))
	assert.Error(t, err)
}

func TestRecordHelpersTolerateNilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordLoadMetrics(context.Background(), nil, "csv", 0, 0, errors.New("boom"))
		RecordExport(context.Background(), nil, "xlsx")
		RecordError(context.Background(), errors.New("boom"))
	})

	metrics, err := CreateDashboardMetrics(nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		RecordLoadMetrics(context.Background(), metrics, "xlsx", 0, time.Second, errors.New("missing"))
		RecordExport(context.Background(), metrics, "csv")
	})
}
