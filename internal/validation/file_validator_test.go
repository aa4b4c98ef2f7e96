package validation

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignpulse/internal/dataprocessing"
)

func newTestValidator() (*FileValidator, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewFileValidator(logger), &buf
}

func TestFileValidator_ValidateDataFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "valid csv",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "campaign_metrics_powerbi.csv")
				require.NoError(t, os.WriteFile(path, []byte("CampaignName\n"), 0644))
				return path
			},
		},
		{
			name: "valid xlsx",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "campaigns.XLSX")
				require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))
				return path
			},
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "dir.csv")
				require.NoError(t, os.Mkdir(path, 0755))
				return path
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "data.json")
				require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "not a CSV or XLSX dataset",
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$campaigns.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestValidator()
			err := v.ValidateDataFile(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_ValidateFileWrapsNotExist(t *testing.T) {
	v, logs := newTestValidator()

	err := v.ValidateFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, logs.String(), "File does not exist")
	assert.Contains(t, logs.String(), `"component":"file_validator"`)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}

func TestFileValidator_ValidateDataFileKeepsFormatCause(t *testing.T) {
	v, logs := newTestValidator()

	err := v.ValidateDataFile(filepath.Join(t.TempDir(), "campaigns.parquet"))
	assert.ErrorIs(t, err, dataprocessing.ErrUnsupportedFormat)
	assert.Contains(t, logs.String(), "Unsupported dataset extension")
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v, _ := newTestValidator()

	dir := filepath.Join(t.TempDir(), "reports", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe is removed")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	assert.Error(t, v.ValidateOutputDirectory(filepath.Join(blocker, "sub")))
}

func TestNewFileValidatorNilLogger(t *testing.T) {
	assert.NotNil(t, NewFileValidator(nil))
}
