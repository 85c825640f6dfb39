package plugincache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plugins.dat")
	c := sampleCache()

	require.NoError(t, WriteFile(c, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mustEncode(t, c), got, "file bytes must equal the encoder output")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files may remain after a successful write")
}

func TestWriteFileReplacesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plugins.dat")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	c := sampleCache()
	require.NoError(t, WriteFile(c, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mustEncode(t, c), got)
}

func TestWriteFileEncodeFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plugins.dat")

	c := NewCache()
	c.Category("cat1").Put(PluginEntry{Key: strings.Repeat("x", 65536), Category: "cat1"})

	err := WriteFile(c, path)
	require.ErrorIs(t, err, ErrStringTooLong)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "a failed encode must not touch the target file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files may remain after a failed write")
}

func TestWriteFileMissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "plugins.dat")
	err := WriteFile(sampleCache(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path, "I/O failures must surface the path")
}
