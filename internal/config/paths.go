package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations for one run.
// This is the single source of truth for paths in the application.
type Paths struct {
	InputDir  string
	OutputDir string
	LogsDir   string
}

// NewPaths resolves the configured directories against the current working
// directory. Relative paths stay relative to where the tool is invoked, the
// same place the raw export directory lives.
func NewPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wd, p)
	}

	return &Paths{
		InputDir:  resolve(cfg.Input.Dir),
		OutputDir: resolve(cfg.Output.Dir),
		LogsDir:   resolve(filepath.Dir(cfg.Logging.FilePath)),
	}, nil
}

// EnsureOutputDirectories creates the directories the run writes into.
// The input directory is deliberately not created: a missing input directory
// means "no data to process", not a setup step.
func (p *Paths) EnsureOutputDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetOutputPath returns the full path for an output file
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
