package counters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseLabelValue_PerfStatLayout(t *testing.T) {
	content := "# started on Tue Aug 12\n" +
		"\n" +
		"1000,,branch-instructions,300000000,100.00,,\n" +
		"50,,branch-misses,300000000,5.00,,\n" +
		"garbage line without commas\n"
	path := writeExport(t, "perf.csv", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{
		Labels: []string{"branch-instructions", "branch-misses"},
	})
	require.NoError(t, err)

	require.Len(t, rec, 2)
	assert.Equal(t, int64(1000), rec["branch-instructions"].Int)
	assert.Equal(t, int64(50), rec["branch-misses"].Int)
}

func TestParseLabelValue_KeepsAllLabelsWithoutFilter(t *testing.T) {
	content := "123,,cpu_core/instructions/,300,100.00\n" +
		"456,,cpu_core/cpu-cycles/,300,100.00\n"
	path := writeExport(t, "all.csv", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{})
	require.NoError(t, err)

	require.Len(t, rec, 2)
	assert.Equal(t, int64(123), rec["cpu_core/instructions/"].Int)
	assert.Equal(t, int64(456), rec["cpu_core/cpu-cycles/"].Int)
}

func TestParseLabelValue_NotSupportedSentinel(t *testing.T) {
	content := "<not supported>,,cpu_core/l2_rqsts.miss/,300,\n" +
		"oops,,cpu_core/LLC-loads/,300,\n"
	path := writeExport(t, "sentinel.csv", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{})
	require.NoError(t, err)

	// Sentinel and non-numeric values both map to zero, not an error.
	assert.Equal(t, int64(0), rec["cpu_core/l2_rqsts.miss/"].Int)
	assert.Equal(t, int64(0), rec["cpu_core/LLC-loads/"].Int)
}

func TestParseLabelValue_TabSeparatedCollapse(t *testing.T) {
	content := "900000\t\tex_ret_instr\t12\t34\n" +
		"10000\t\tex_ret_brn\t12\t34\n" +
		"# comment\n" +
		"\n" +
		"2000\t\tld_dispatch\t12\t34\n"
	path := writeExport(t, "instr.txt", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{
		Delimiter:     '\t',
		CollapseEmpty: true,
		Labels:        []string{"ex_ret_instr", "ex_ret_brn", "ld_dispatch", "store_dispatch"},
	})
	require.NoError(t, err)

	require.Len(t, rec, 3)
	assert.Equal(t, int64(900000), rec["ex_ret_instr"].Int)
	assert.Equal(t, int64(10000), rec["ex_ret_brn"].Int)
	assert.Equal(t, int64(2000), rec["ld_dispatch"].Int)
}

func TestParseLabelValue_LabelCanonicalization(t *testing.T) {
	// The label substring, not the full raw label, names the field.
	content := "5000\t\tex_ret_instr.all_modes\t1\t2\n"
	path := writeExport(t, "alias.txt", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{
		Delimiter:     '\t',
		CollapseEmpty: true,
		Labels:        []string{"ex_ret_instr"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), rec["ex_ret_instr"].Int)
}

func TestParseLabelValue_SecondaryField(t *testing.T) {
	content := "50,,branch-misses,300000000,5.00,,\n"
	path := writeExport(t, "secondary.csv", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{
		Labels:          []string{"branch-misses"},
		SecondaryField:  4,
		SecondarySuffix: "/reported",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), rec["branch-misses"].Int)
	assert.Equal(t, 5.0, rec["branch-misses/reported"].Float)
}

func TestParseLabelValue_FloatValues(t *testing.T) {
	// Energy rows carry the unit at field 1: value,unit,event,...
	content := "12.50,Joules,power/energy-pkg/,300,100.00\n"
	path := writeExport(t, "energy.csv", content)

	rec, err := ParseLabelValue(path, LabelValueOptions{
		LabelField: 1,
		Labels:     []string{"Joules"},
	})
	require.NoError(t, err)

	require.Contains(t, rec, "Joules")
	assert.Equal(t, 12.5, rec["Joules"].AsFloat())
}

func TestParseLabelValue_MissingFile(t *testing.T) {
	_, err := ParseLabelValue(filepath.Join(t.TempDir(), "absent.csv"), LabelValueOptions{})
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"integer", "1234", 1234},
		{"float", "12.5", 12.5},
		{"not supported sentinel", "<not supported>", 0},
		{"non-numeric", "abc", 0},
		{"empty", "", 0},
		{"whitespace padded", "  77  ", 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseValue(tt.input).AsFloat())
		})
	}
}

func TestAliasTable_Resolve(t *testing.T) {
	aliases := AliasTable{
		"instructions": {"cpu_core/instructions/", "instructions", "ex_ret_instr"},
	}
	rec := RawRecord{
		"instructions": IntValue(500),
		"ex_ret_instr": IntValue(900),
	}

	// First alias spelling present wins; cpu_core variant is absent here.
	v, ok := aliases.Resolve(rec, "instructions")
	require.True(t, ok)
	assert.Equal(t, int64(500), v.Int)

	_, ok = aliases.Resolve(rec, "cycles")
	assert.False(t, ok)

	f, ok := aliases.ResolveFloat(rec, "instructions")
	require.True(t, ok)
	assert.Equal(t, 500.0, f)
}
