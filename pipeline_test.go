package pnmview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	good := writeFile(t, dir, "good.ppm", testPPM)
	bad := writeFile(t, dir, "bad.pgm", []byte("P5 1 1 255\n"))
	nested := writeFile(t, dir, "sub/dir/bitmap.pbm", []byte("P1 2 1 0 1"))
	writeFile(t, dir, ".hidden/ignored.ppm", testPPM)
	writeFile(t, dir, "notes.txt", []byte("P1 1 1 0"))

	c := newTestCatalog(t)
	cfg := DefaultConfig()
	cfg.Workers = 2
	v := New(c, cfg, discard())

	require.NoError(t, v.Scan(dir))

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byPath := make(map[string]Entry)
	for _, e := range entries {
		byPath[e.Path] = e
	}

	assert.Equal(t, "PPM P6", byPath[good].Format)
	assert.Equal(t, 2, byPath[good].Width)
	assert.Empty(t, byPath[good].Error)
	assert.Len(t, byPath[good].SHA1, 40)

	assert.Equal(t, "PBM P1", byPath[nested].Format)

	assert.Empty(t, byPath[bad].Format)
	assert.Contains(t, byPath[bad].Error, "netpbm: invalid format")

	// Fixing a file updates its entry on the next scan
	require.NoError(t, os.WriteFile(bad, []byte("P5 1 1 255\n\x80"), 0o644))
	require.NoError(t, v.Scan(dir))

	e, err := c.Find(bad)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "PGM P5", e.Format)
	assert.Empty(t, e.Error)
	assert.NotEqual(t, byPath[bad].SHA1, e.SHA1)

	entries, err = c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestScanSkipsLargeFiles(t *testing.T) {
	dir := t.TempDir()

	small := writeFile(t, dir, "small.ppm", testPPM)
	large := writeFile(t, dir, "large.ppm", testPPM)
	require.NoError(t, os.Truncate(large, maxFileSize+1))

	c := newTestCatalog(t)
	v := New(c, nil, discard())
	require.NoError(t, v.Scan(dir))

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, small, entries[0].Path)

	e, err := c.Find(large)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestScanWithoutCatalog(t *testing.T) {
	v := New(nil, nil, discard())
	assert.Equal(t, errNoCatalog, v.Scan(t.TempDir()))
}

func TestScanMissingDirectory(t *testing.T) {
	v := New(newTestCatalog(t), nil, discard())
	assert.Error(t, v.Scan(filepath.Join(t.TempDir(), "missing")))
}
