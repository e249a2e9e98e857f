package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, 10.5, s.Classify.PairDistanceCutoff)
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rnannot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
threads: 4
output: jsonl
classify:
  stack_distance_cutoff: 7.5
  min_ring_overlap: 0.2
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Threads)
	assert.Equal(t, "jsonl", s.Output)
	assert.Equal(t, 7.5, s.Classify.StackDistanceCutoff)
	assert.Equal(t, 0.2, s.Classify.MinRingOverlap)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10.5, s.Classify.PairDistanceCutoff)
}

func TestLoadRejectsInvalidTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classify:\n  pair_distance_cutoff: -2\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: xml\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
