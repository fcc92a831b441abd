package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/yashgyy/ISPASS-Results/internal/config"
	"github.com/yashgyy/ISPASS-Results/internal/counters"
	"github.com/yashgyy/ISPASS-Results/internal/files"
	"github.com/yashgyy/ISPASS-Results/internal/metrics"
	"github.com/yashgyy/ISPASS-Results/internal/summary"
)

const groupedBaseName = "parsed_performance_energy_data"

// groupedPercentColumns get the percentage display format in xlsx output
var groupedPercentColumns = []string{"Misses_%"}

// Pipeline runs the full extraction pass: discover raw exports, parse each
// one by category, compute the derived metrics and write the summary tables.
type Pipeline struct {
	cfg     *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	console io.Writer
	clock   func() time.Time
}

// New creates a pipeline over the given configuration and resolved paths
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, paths: paths, logger: logger, clock: time.Now}
}

// WithConsole makes the pipeline print each written table to w as well
func (p *Pipeline) WithConsole(w io.Writer) *Pipeline {
	p.console = w
	return p
}

// RunReport summarizes what a pipeline run did
type RunReport struct {
	FilesFound   int
	FilesParsed  int
	FilesSkipped int
	Outputs      []string
}

// Run executes one full pass. A missing input directory or an input
// directory with no matching files completes cleanly with an empty report;
// only I/O failures on files that exist, and write failures, are errors.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{}

	catalog := files.DefaultCatalog()
	if len(p.cfg.Run.Categories) > 0 {
		selected := make([]files.Category, 0, len(p.cfg.Run.Categories))
		for _, c := range p.cfg.Run.Categories {
			selected = append(selected, files.Category(c))
		}
		catalog = files.CatalogFor(catalog, selected)
	}

	discovery := files.NewDiscovery(p.logger)
	found, err := discovery.Find(p.paths.InputDir, catalog)
	if err != nil {
		return nil, err
	}
	report.FilesFound = len(found)

	p.logger.InfoContext(ctx, "discovered raw exports",
		slog.Int("count", len(found)),
		slog.String("dir", p.paths.InputDir))

	grouped := p.buildGroupedTable(ctx, found, report)
	if err := p.writeGrouped(ctx, grouped, report); err != nil {
		return report, err
	}

	for _, s := range p.summaries() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		table := p.buildSummaryTable(ctx, found, s, report)
		if err := p.writeTable(ctx, s.baseName, table, nil, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// buildGroupedTable parses the energy and branch-statistics exports and
// merges files from the same profiling run into one row keyed by
// configuration and algorithm.
func (p *Pipeline) buildGroupedTable(ctx context.Context, found []files.File, report *RunReport) *summary.Table {
	table := summary.NewTable(
		"Config", "Algorithm",
		"Energy_Joules",
		"Branch_Instructions", "Branch_Misses", "Misses_%", "Misses_Percentage_Reported",
		"Energy_File", "Performance_File",
	)

	for _, f := range found {
		if f.Category != files.CategoryEnergy && f.Category != files.CategoryPerformance {
			continue
		}

		key, ok := SplitGroupKey(f.Name)
		if !ok {
			p.logger.WarnContext(ctx, "cannot derive run key from filename, skipping",
				slog.String("file", f.Name))
			report.FilesSkipped++
			continue
		}

		rec, err := counters.ParseLabelValue(f.Path, labelValueOptionsFor(f.Category))
		if err != nil {
			p.logger.WarnContext(ctx, "failed to parse export, skipping",
				slog.String("file", f.Name),
				slog.String("error", err.Error()))
			report.FilesSkipped++
			continue
		}

		record := summary.NewRecord()
		record.Set("Config", key.Config)
		record.Set("Algorithm", key.Algorithm)

		var computed []metrics.Metric
		if f.Category == files.CategoryEnergy {
			computed = metrics.EnergyMetrics(rec)
			record.Set("Energy_File", f.Name)
		} else {
			computed = metrics.BranchMetrics(rec)
			record.Set("Performance_File", f.Name)
		}
		for _, m := range computed {
			record.Set(m.Name, m.Value)
		}

		table.Append(record)
		report.FilesParsed++
	}

	table.MergeBy("Config", "Algorithm")
	table.SortBy("Config", "Algorithm")
	return table
}

// categorySummary describes one per-file summary output
type categorySummary struct {
	category files.Category
	baseName string
	compute  func(counters.RawRecord) []metrics.Metric
}

func (p *Pipeline) summaries() []categorySummary {
	duration := p.cfg.Run.DurationSeconds
	return []categorySummary{
		{files.CategoryCache, "perf_metrics_summary_micro", metrics.CacheMetrics},
		{files.CategoryIPC, "ic_ipc_metrics_summary", metrics.IPCMetrics},
		{files.CategoryBandwidth, "bandwidth_metrics_summary", func(rec counters.RawRecord) []metrics.Metric {
			return metrics.BandwidthMetrics(rec, duration)
		}},
		{files.CategoryInstructions, "instruction_analysis", metrics.InstructionMix},
		{files.CategoryAggregate, "performance_metrics_summary", metrics.AggregateMetrics},
	}
}

// buildSummaryTable produces one row per successfully parsed file of the
// summary's category. Files that fail to parse, or table exports whose
// marker never appears, are skipped with a log line and never abort the run.
func (p *Pipeline) buildSummaryTable(ctx context.Context, found []files.File, s categorySummary, report *RunReport) *summary.Table {
	table := summary.NewTable("filename")

	for _, f := range files.FilterByCategory(found, s.category) {
		rec, ok := p.parseForCategory(ctx, f, report)
		if !ok {
			continue
		}

		record := summary.NewRecord()
		record.Set("filename", f.Name)
		for _, m := range s.compute(rec) {
			record.Set(m.Name, m.Value)
		}

		table.Append(record)
		report.FilesParsed++
	}

	return table
}

func (p *Pipeline) parseForCategory(ctx context.Context, f files.File, report *RunReport) (counters.RawRecord, bool) {
	switch f.Category {
	case files.CategoryAggregate:
		rec, ok, err := counters.ParseTable(f.Path, counters.TableOptions{
			MinRows: p.cfg.Run.MinTableRows,
		})
		if err != nil {
			p.logger.WarnContext(ctx, "failed to read export, skipping",
				slog.String("file", f.Name),
				slog.String("error", err.Error()))
			report.FilesSkipped++
			return nil, false
		}
		if !ok {
			p.logger.DebugContext(ctx, "export has no aggregated table, skipping",
				slog.String("file", f.Name))
			report.FilesSkipped++
			return nil, false
		}
		return rec, true

	case files.CategoryInstructions:
		for _, opts := range instructionOptions {
			rec, err := counters.ParseLabelValue(f.Path, opts)
			if err != nil {
				p.logger.WarnContext(ctx, "failed to read export, skipping",
					slog.String("file", f.Name),
					slog.String("error", err.Error()))
				report.FilesSkipped++
				return nil, false
			}
			if len(rec) > 0 {
				return rec, true
			}
		}
		p.logger.DebugContext(ctx, "export yielded no counters, skipping",
			slog.String("file", f.Name))
		report.FilesSkipped++
		return nil, false

	default:
		rec, err := counters.ParseLabelValue(f.Path, labelValueOptionsFor(f.Category))
		if err != nil {
			p.logger.WarnContext(ctx, "failed to read export, skipping",
				slog.String("file", f.Name),
				slog.String("error", err.Error()))
			report.FilesSkipped++
			return nil, false
		}
		return rec, true
	}
}

// writeGrouped writes the merged energy and branch table under a timestamped
// name so repeated runs keep their history
func (p *Pipeline) writeGrouped(ctx context.Context, table *summary.Table, report *RunReport) error {
	base := groupedBaseName
	if p.cfg.Output.Timestamp {
		base = groupedBaseName + "_" + p.clock().Format(config.TimestampLayout)
	}
	return p.writeTable(ctx, base, table, groupedPercentColumns, report)
}

// writeTable writes one table in the configured formats. Empty tables
// produce no files at all.
func (p *Pipeline) writeTable(ctx context.Context, baseName string, table *summary.Table, percentColumns []string, report *RunReport) error {
	if table.Empty() {
		p.logger.InfoContext(ctx, "no records for output, nothing written",
			slog.String("output", baseName))
		return nil
	}

	format := p.cfg.Output.Format

	if format == config.FormatCSV || format == config.FormatBoth {
		w := summary.NewCSVWriter(p.paths.OutputDir, p.logger)
		path, err := w.WriteTable(baseName+".csv", table, summary.WriteOptions{BOMPrefix: true})
		if err != nil {
			return err
		}
		if path != "" {
			report.Outputs = append(report.Outputs, path)
		}
	}

	if format == config.FormatXLSX || format == config.FormatBoth {
		w := summary.NewExcelWriter(p.paths.OutputDir, p.logger)
		path, err := w.WriteTable(baseName+".xlsx", table, percentColumns)
		if err != nil {
			return err
		}
		if path != "" {
			report.Outputs = append(report.Outputs, path)
		}
	}

	if p.console != nil {
		if err := summary.PrintTable(p.console, table); err != nil {
			return err
		}
	}

	return nil
}
