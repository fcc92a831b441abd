package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashgyy/ISPASS-Results/internal/config"
)

func testPipeline(t *testing.T, inputDir string) (*Pipeline, string) {
	t.Helper()
	outDir := t.TempDir()
	cfg := &config.Config{
		Input:  config.InputConfig{Dir: inputDir},
		Output: config.OutputConfig{Dir: outDir, Format: config.FormatCSV},
		Run:    config.RunConfig{DurationSeconds: 300, MinTableRows: 1},
	}
	paths := &config.Paths{InputDir: inputDir, OutputDir: outDir}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, paths, logger), outDir
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun_MergesEnergyAndBranchExportsForSameRun(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "cfgA_energy_alg1.csv",
		"12.50,Joules,power/energy-pkg/,300,100.00\n")
	writeFixture(t, inDir, "cfgA_performance_alg1.csv",
		"1000,,branch-instructions,300,25.00\n"+
			"50,,branch-misses,300,5.02\n")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesFound)
	assert.Equal(t, 2, report.FilesParsed)
	assert.Equal(t, 0, report.FilesSkipped)
	require.Len(t, report.Outputs, 1)

	rows := readCSV(t, filepath.Join(outDir, "parsed_performance_energy_data.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Config", "Algorithm",
		"Energy_Joules",
		"Branch_Instructions", "Branch_Misses", "Misses_%", "Misses_Percentage_Reported",
		"Energy_File", "Performance_File",
	}, rows[0])
	assert.Equal(t, []string{
		"cfgA", "alg1",
		"12.5",
		"1000", "50", "5", "5.02",
		"cfgA_energy_alg1.csv", "cfgA_performance_alg1.csv",
	}, rows[1])
}

func TestRun_MissingInputDirCompletesCleanly(t *testing.T) {
	inDir := filepath.Join(t.TempDir(), "does-not-exist")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.FilesFound)
	assert.Equal(t, 0, report.FilesParsed)
	assert.Empty(t, report.Outputs)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be written for an empty run")
}

func TestRun_IPCSummary(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "IC_IS_ipc_run1.csv",
		"3000,,cpu_core/instructions/,300,\n"+
			"1500,,cpu_core/cpu-cycles/,300,\n")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesParsed)

	rows := readCSV(t, filepath.Join(outDir, "ic_ipc_metrics_summary.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"filename", "IPC", "Instructions", "Cycles"}, rows[0])
	assert.Equal(t, []string{"IC_IS_ipc_run1.csv", "2", "3000", "1500"}, rows[1])
}

func TestRun_BandwidthUsesConfiguredDuration(t *testing.T) {
	inDir := t.TempDir()
	// 2^24 CAS reads of 64 bytes each is exactly 1 GiB.
	writeFixture(t, inDir, "IS_AMDC_bandwidth_run1.csv",
		"16777216,,unc_m_cas_count.rd_reg,300,\n")

	p, outDir := testPipeline(t, inDir)
	p.cfg.Run.DurationSeconds = 2

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(outDir, "bandwidth_metrics_summary.csv"))
	require.Len(t, rows, 2)
	header, row := rows[0], rows[1]
	idx := indexOf(t, header, "Read_Bandwidth_GBs")
	assert.Equal(t, "0.5", row[idx])
}

func TestRun_AggregateTableAbstentionIsSkipNotError(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "AMDS_report_good.csv",
		"uProf export preamble\n"+
			"System (Aggregated)\n"+
			"Utilization (%),IPC (Sys + User),IC Access (pti),IC Miss (pti)\n"+
			"98.0,1.3,100,5\n")
	writeFixture(t, inDir, "AMDS_report_empty.csv",
		"uProf export preamble with no data table\n")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesFound)
	assert.Equal(t, 1, report.FilesParsed)
	assert.Equal(t, 1, report.FilesSkipped)

	rows := readCSV(t, filepath.Join(outDir, "performance_metrics_summary.csv"))
	require.Len(t, rows, 2)
	header, row := rows[0], rows[1]
	assert.Equal(t, "95", row[indexOf(t, header, "ic_hit_pct")])
	assert.Equal(t, "98", row[indexOf(t, header, "utilization_pct")])
}

func TestRun_UnkeyedGroupedFileIsSkipped(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "_performance_alg1.csv",
		"1000,,branch-instructions,300,25.00\n")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.FilesSkipped)
	assert.Equal(t, 0, report.FilesParsed)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CategoryFilter(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "cfgA_energy_alg1.csv",
		"12.50,Joules,power/energy-pkg/,300,100.00\n")
	writeFixture(t, inDir, "IC_IS_ipc_run1.csv",
		"3000,,cpu_core/instructions/,300,\n")

	p, _ := testPipeline(t, inDir)
	p.cfg.Run.Categories = []string{"ipc"}

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesFound)
	require.Len(t, report.Outputs, 1)
	assert.True(t, strings.HasSuffix(report.Outputs[0], "ic_ipc_metrics_summary.csv"))
}

func TestRun_TimestampedGroupedOutput(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "cfgA_energy_alg1.csv",
		"12.50,Joules,power/energy-pkg/,300,100.00\n")

	p, _ := testPipeline(t, inDir)
	p.cfg.Output.Timestamp = true

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Outputs, 1)

	name := filepath.Base(report.Outputs[0])
	assert.Regexp(t, `^parsed_performance_energy_data_\d{8}_\d{6}\.csv$`, name)
}

func TestRun_ConsoleOutput(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "IC_IS_ipc_run1.csv",
		"3000,,cpu_core/instructions/,300,\n"+
			"1500,,cpu_core/cpu-cycles/,300,\n")

	var buf bytes.Buffer
	p, _ := testPipeline(t, inDir)
	p.WithConsole(&buf)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "IPC")
	assert.Contains(t, buf.String(), "IC_IS_ipc_run1.csv")
}

func TestRun_InstructionMixTabExport(t *testing.T) {
	inDir := t.TempDir()
	writeFixture(t, inDir, "AMDC_AMDS_instr_run1.txt",
		"1000\t\tex_ret_instr\n"+
			"200\t\tex_ret_brn\n"+
			"300\t\tld_dispatch\n"+
			"100\t\tstore_dispatch\n")

	p, outDir := testPipeline(t, inDir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesParsed)

	rows := readCSV(t, filepath.Join(outDir, "instruction_analysis.csv"))
	require.Len(t, rows, 2)
	header, row := rows[0], rows[1]
	assert.Equal(t, "40", row[indexOf(t, header, "percent_alu")])
	assert.Equal(t, "400", row[indexOf(t, header, "alu_ops")])
}

func indexOf(t *testing.T, header []string, col string) int {
	t.Helper()
	for i, h := range header {
		if h == col {
			return i
		}
	}
	t.Fatalf("column %q not in header %v", col, header)
	return -1
}

func TestSplitGroupKey(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		config    string
		algorithm string
		ok        bool
	}{
		{"energy separator", "cfgA_energy_alg1.csv", "cfgA", "alg1", true},
		{"performance separator", "cfgB_performance_sort.csv", "cfgB", "sort", true},
		{"misspelled separator", "cfgC_perfomance_scan.csv", "cfgC", "scan", true},
		{"multi-part config", "intel_i9_energy_merge_sort.csv", "intel_i9", "merge_sort", true},
		{"no separator", "random.csv", "", "", false},
		{"empty config", "_energy_alg.csv", "", "", false},
		{"empty algorithm", "cfg_energy_.csv", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := SplitGroupKey(tt.file)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.config, key.Config)
				assert.Equal(t, tt.algorithm, key.Algorithm)
			}
		})
	}
}
