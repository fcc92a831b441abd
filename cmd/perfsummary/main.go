package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/yashgyy/ISPASS-Results/internal/config"
	"github.com/yashgyy/ISPASS-Results/internal/infrastructure"
	"github.com/yashgyy/ISPASS-Results/internal/pipeline"
)

func main() {
	dir := flag.String("dir", "", "directory containing raw counter exports (defaults to Raw_Files)")
	out := flag.String("out", "", "output directory for summary tables (defaults to Results_Parsed)")
	format := flag.String("format", "", "output format: csv | xlsx | both")
	duration := flag.Float64("duration", 0, "profiling run duration in seconds, used for bandwidth normalization")
	minRows := flag.Int("min-rows", 0, "minimum valid data rows for an aggregated table export")
	categories := flag.String("category", "", "comma-separated category filter (energy,performance,bandwidth,ipc,cache,instructions,aggregate)")
	printTables := flag.Bool("print", false, "print each written table to stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags override whatever the environment and config file said
	if *dir != "" {
		cfg.Input.Dir = *dir
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *duration > 0 {
		cfg.Run.DurationSeconds = *duration
	}
	if *minRows > 0 {
		cfg.Run.MinTableRows = *minRows
	}
	if *categories != "" {
		cfg.Run.Categories = strings.Split(*categories, ",")
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureOutputDirectories(); err != nil {
		slog.Error("Failed to create output directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())

	logger.InfoContext(ctx, "Starting counter extraction",
		slog.String("input_dir", paths.InputDir),
		slog.String("output_dir", paths.OutputDir),
		slog.String("format", cfg.Output.Format),
		slog.Float64("duration_seconds", cfg.Run.DurationSeconds))

	p := pipeline.New(cfg, paths, logger)
	if *printTables {
		p.WithConsole(os.Stdout)
	}

	report, err := p.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Extraction complete",
		slog.Int("files_found", report.FilesFound),
		slog.Int("files_parsed", report.FilesParsed),
		slog.Int("files_skipped", report.FilesSkipped),
		slog.Int("outputs", len(report.Outputs)))

	// Progress messages for wrapping scripts to parse
	fmt.Printf("Found %d raw export files\n", report.FilesFound)
	for _, path := range report.Outputs {
		fmt.Printf("Wrote %s\n", path)
	}
	fmt.Printf("Extraction complete: %d files parsed, %d skipped\n",
		report.FilesParsed, report.FilesSkipped)
}
