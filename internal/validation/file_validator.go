package validation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"campaignpulse/internal/dataprocessing"
)

// FileValidator checks the files the dashboard reads and the directories
// it writes exports to. Health probes and the CLI share it.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a FileValidator. A nil logger means slog.Default.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// reject logs the failed check at level and returns err unchanged.
func (v *FileValidator) reject(level slog.Level, msg, path string, err error) error {
	v.logger.Log(context.Background(), level, msg,
		slog.String("path", path),
		slog.String("error", err.Error()))
	return err
}

// ValidateFile checks that path is a readable regular file.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return v.reject(slog.LevelError, "File does not exist", path,
			fmt.Errorf("file %s does not exist: %w", path, err))
	case err != nil:
		return v.reject(slog.LevelError, "Failed to stat file", path,
			fmt.Errorf("failed to stat file %s: %w", path, err))
	case info.IsDir():
		return v.reject(slog.LevelError, "Path is a directory", path,
			fmt.Errorf("%s is a directory, not a file", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return v.reject(slog.LevelError, "File is not readable", path,
			fmt.Errorf("file %s is not readable: %w", path, err))
	}
	f.Close()

	v.logger.Debug("File validated",
		slog.String("path", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateDataFile checks that path is a readable dataset in a format the
// loader understands. Excel lock files ("~$name.xlsx") are rejected.
func (v *FileValidator) ValidateDataFile(path string) error {
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return v.reject(slog.LevelWarn, "Rejecting temporary Excel file", path,
			fmt.Errorf("file %s is a temporary Excel file", path))
	}

	if _, err := dataprocessing.DetectFormat(path); err != nil {
		return v.reject(slog.LevelError, "Unsupported dataset extension", path,
			fmt.Errorf("file %s is not a CSV or XLSX dataset: %w", path, err))
	}

	return v.ValidateFile(path)
}

// ValidateOutputDirectory creates dir if needed and proves it is writable
// with a probe file that is removed again.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return v.reject(slog.LevelError, "Failed to create output directory", dir,
			fmt.Errorf("failed to create output directory %s: %w", dir, err))
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		return v.reject(slog.LevelError, "Output directory is not writable", dir,
			fmt.Errorf("output directory %s is not writable: %w", dir, err))
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("path", dir))
	return nil
}
