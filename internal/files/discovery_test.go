package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names []string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}
}

func TestFind_NonexistentDirectory(t *testing.T) {
	d := NewDiscovery(nil)

	found, err := d.Find(filepath.Join(t.TempDir(), "does-not-exist"), DefaultCatalog())

	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFind_CategoryAttachment(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, []string{
		"cfgA_energy_algo1.csv",
		"cfgA_performance_algo1.csv",
		"cfgB_perfomance_algo2.csv",
		"IS_AMDC_bandwidth_run1.csv",
		"IC_IS_ipc_run1.csv",
		"notes.txt",
	})

	d := NewDiscovery(nil)
	found, err := d.Find(dir, DefaultCatalog())
	require.NoError(t, err)

	byName := make(map[string]Category)
	for _, f := range found {
		byName[f.Name] = f.Category
	}

	assert.Equal(t, CategoryEnergy, byName["cfgA_energy_algo1.csv"])
	assert.Equal(t, CategoryPerformance, byName["cfgA_performance_algo1.csv"])
	assert.Equal(t, CategoryPerformance, byName["cfgB_perfomance_algo2.csv"])
	assert.Equal(t, CategoryBandwidth, byName["IS_AMDC_bandwidth_run1.csv"])
	assert.Equal(t, CategoryIPC, byName["IC_IS_ipc_run1.csv"])
	assert.NotContains(t, byName, "notes.txt")
}

func TestFind_DeduplicatesAcrossPatterns(t *testing.T) {
	dir := t.TempDir()
	// Matches both "*_energy_*.csv" and the aggregate "AMDS*.csv" glob;
	// the earlier pattern's category must win.
	writeFiles(t, dir, []string{"AMDS_AMDC_pb_energy_algo.csv"})

	d := NewDiscovery(nil)
	found, err := d.Find(dir, DefaultCatalog())
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, CategoryEnergy, found[0].Category)
}

func TestFind_SortedWithinPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, []string{
		"cfgB_energy_a.csv",
		"cfgA_energy_a.csv",
		"cfgC_energy_a.csv",
	})

	d := NewDiscovery(nil)
	found, err := d.Find(dir, []Pattern{{Glob: "*_energy_*.csv", Category: CategoryEnergy}})
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.Equal(t, "cfgA_energy_a.csv", found[0].Name)
	assert.Equal(t, "cfgB_energy_a.csv", found[1].Name)
	assert.Equal(t, "cfgC_energy_a.csv", found[2].Name)
}

func TestFind_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub_energy_dir.csv"), 0755))
	writeFiles(t, dir, []string{"cfg_energy_a.csv"})

	d := NewDiscovery(nil)
	found, err := d.Find(dir, []Pattern{{Glob: "*_energy_*.csv", Category: CategoryEnergy}})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "cfg_energy_a.csv", found[0].Name)
}

func TestFilterByCategory(t *testing.T) {
	all := []File{
		{Name: "a.csv", Category: CategoryEnergy},
		{Name: "b.csv", Category: CategoryPerformance},
		{Name: "c.csv", Category: CategoryEnergy},
	}

	energy := FilterByCategory(all, CategoryEnergy)
	require.Len(t, energy, 2)
	assert.Equal(t, "a.csv", energy[0].Name)
	assert.Equal(t, "c.csv", energy[1].Name)

	assert.Empty(t, FilterByCategory(all, CategoryBandwidth))
}

func TestCatalogFor(t *testing.T) {
	catalog := DefaultCatalog()

	filtered := CatalogFor(catalog, []Category{CategoryBandwidth})
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, CategoryBandwidth, p.Category)
	}

	assert.Equal(t, catalog, CatalogFor(catalog, nil))
}
