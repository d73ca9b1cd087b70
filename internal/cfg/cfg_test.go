package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchReferenceConstants(t *testing.T) {
	s := Defaults()

	assert.Equal(t, "bike_sharing.csv", s.DataPath)
	assert.Equal(t, ',', s.Delimiter)
	assert.True(t, s.HasHeader)
	assert.Equal(t, 0.1, s.TestFraction)
	assert.Equal(t, uint64(0), s.Seed)
}

func TestLoadWithoutOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  path: /tmp/rentals.csv
  delimiter: ";"
split:
  testFraction: 0.2
  seed: 42
trainer:
  numIterations: 50
  learningRate: 0.05
output:
  rocPlotPath: roc.png
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rentals.csv", s.DataPath)
	assert.Equal(t, ';', s.Delimiter)
	assert.Equal(t, 0.2, s.TestFraction)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, 50, s.NumIterations)
	assert.Equal(t, 0.05, s.LearningRate)
	assert.Equal(t, "roc.png", s.ROCPlotPath)
	// Untouched keys keep their defaults.
	assert.Equal(t, 6, s.MaxDepth)
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("split:\n  testFraction: 0.3\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BIKECAST_TEST_FRACTION", "0.25")
	t.Setenv("BIKECAST_SEED", "7")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.TestFraction)
	assert.Equal(t, uint64(7), s.Seed)
}

func TestLoadRejectsBadFraction(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("BIKECAST_TEST_FRACTION", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testFraction")
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
