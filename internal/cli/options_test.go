package cli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("rnannot")
	fs.SetOutput(discard{})
	return ParseArgs(fs, args)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestParsePositionalStructures(t *testing.T) {
	opt, err := parse(t, "-output", "json", "a.pdb", "b.pdb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdb", "b.pdb"}, opt.Structures)
	assert.Equal(t, "json", opt.Output)
	assert.True(t, opt.Header)
}

func TestParseRepeatableFlag(t *testing.T) {
	opt, err := parse(t, "-structures", "a.pdb", "-structures", "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdb", "-"}, opt.Structures)
}

func TestParseCategories(t *testing.T) {
	opt, err := parse(t, "-categories", "pair, stack", "a.pdb")
	require.NoError(t, err)
	assert.Equal(t, []string{"pair", "stack"}, opt.Categories)

	_, err = parse(t, "-categories", "wobble", "a.pdb")
	assert.Error(t, err)
}

func TestParseRejectsBadOutput(t *testing.T) {
	_, err := parse(t, "-output", "xml", "a.pdb")
	assert.Error(t, err)
}

func TestParseRequiresInput(t *testing.T) {
	_, err := parse(t)
	assert.Error(t, err)
}

func TestParseNoHeader(t *testing.T) {
	opt, err := parse(t, "-no-header", "a.pdb")
	require.NoError(t, err)
	assert.False(t, opt.Header)
}

func TestParseSymmetric(t *testing.T) {
	opt, err := parse(t, "a.pdb")
	require.NoError(t, err)
	assert.False(t, opt.Symmetric)

	opt, err = parse(t, "-symmetric", "a.pdb")
	require.NoError(t, err)
	assert.True(t, opt.Symmetric)
}

func TestParseVersionShortCircuits(t *testing.T) {
	opt, err := parse(t, "-v")
	require.NoError(t, err)
	assert.True(t, opt.Version)
}

func TestParseHelp(t *testing.T) {
	_, err := parse(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}
