package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolvePaths anchors relative paths at BaseDir
func (c *Config) resolvePaths() error {
	if c.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Paths.BaseDir = wd
	}

	abs, err := filepath.Abs(c.Paths.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base dir %q: %w", c.Paths.BaseDir, err)
	}
	c.Paths.BaseDir = abs

	c.Paths.DataFile = c.resolve(c.Paths.DataFile)
	c.Paths.ReportsDir = c.resolve(c.Paths.ReportsDir)
	c.Paths.LogsDir = c.resolve(c.Paths.LogsDir)
	c.Logging.FilePath = c.resolve(c.Logging.FilePath)

	return nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.BaseDir, p)
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportsDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath returns the path of name inside the reports directory.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.Paths.ReportsDir, name)
}
