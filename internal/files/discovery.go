package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Category names a known kind of raw counter export, selected by filename
// pattern. The content layout differs per category.
type Category string

const (
	CategoryEnergy       Category = "energy"
	CategoryPerformance  Category = "performance"
	CategoryBandwidth    Category = "bandwidth"
	CategoryIPC          Category = "ipc"
	CategoryCache        Category = "cache"
	CategoryInstructions Category = "instructions"
	CategoryAggregate    Category = "aggregate"
)

// Categories lists all known categories in processing order.
func Categories() []Category {
	return []Category{
		CategoryEnergy,
		CategoryPerformance,
		CategoryBandwidth,
		CategoryIPC,
		CategoryCache,
		CategoryInstructions,
		CategoryAggregate,
	}
}

// Pattern pairs a glob with the category its matches belong to
type Pattern struct {
	Glob     string
	Category Category
}

// File represents one discovered raw export
type File struct {
	Path     string
	Name     string
	Category Category
}

// Discovery provides file discovery operations
type Discovery struct {
	logger *slog.Logger
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// Find enumerates files under dir matching the given patterns. Matches are
// deduplicated by path; when several patterns match the same file, the first
// pattern's category wins. Matches within one pattern are sorted by name so
// runs are repeatable. A nonexistent directory is "no data to process": it
// yields an empty result, not an error.
func (d *Discovery) Find(dir string, patterns []Pattern) ([]File, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		d.logger.Info("input directory does not exist, nothing to process",
			slog.String("dir", dir))
		return nil, nil
	}

	seen := make(map[string]bool)
	var found []File

	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, p.Glob))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", p.Glob, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			found = append(found, File{
				Path:     match,
				Name:     filepath.Base(match),
				Category: p.Category,
			})
		}
	}

	d.logger.Debug("discovery complete",
		slog.String("dir", dir),
		slog.Int("pattern_count", len(patterns)),
		slog.Int("file_count", len(found)))

	return found, nil
}

// FilterByCategory returns the subset of files belonging to the category,
// preserving order.
func FilterByCategory(all []File, category Category) []File {
	var out []File
	for _, f := range all {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// DefaultCatalog returns the filename patterns the raw exports are known to
// arrive under. Earlier entries win when globs overlap. This is configuration
// data: callers with differently named exports supply their own patterns.
func DefaultCatalog() []Pattern {
	return []Pattern{
		{Glob: "*_energy_*.csv", Category: CategoryEnergy},
		{Glob: "*_performance_*.csv", Category: CategoryPerformance},
		// "perfomance" typo appears in real export batches
		{Glob: "*_perfomance_*.csv", Category: CategoryPerformance},
		{Glob: "IS_AMDC_bandwidth*.csv", Category: CategoryBandwidth},
		{Glob: "IC_AMDS_bandwidth*.csv", Category: CategoryBandwidth},
		{Glob: "IC_IS_ipc*.csv", Category: CategoryIPC},
		{Glob: "IC_AMDC_ipc*.csv", Category: CategoryIPC},
		{Glob: "IC_IS__micro*.csv", Category: CategoryCache},
		{Glob: "IC_IS_micro*.csv", Category: CategoryCache},
		{Glob: "AMDC_AMDS_instr*", Category: CategoryInstructions},
		{Glob: "AMDS_AMDC_instr*", Category: CategoryInstructions},
		{Glob: "AMDS*.csv", Category: CategoryAggregate},
		{Glob: "AMDC*.csv", Category: CategoryAggregate},
	}
}

// CatalogFor restricts the catalog to the named categories. An empty filter
// returns the catalog unchanged.
func CatalogFor(catalog []Pattern, categories []Category) []Pattern {
	if len(categories) == 0 {
		return catalog
	}
	want := make(map[Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var out []Pattern
	for _, p := range catalog {
		if want[p.Category] {
			out = append(out, p)
		}
	}
	return out
}
