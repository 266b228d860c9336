package pnmview

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// 2x2 RGB, top row red and green, bottom row blue and white
	testPPM = append([]byte("P6\n# test\n2 2\n255\n"), 255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 255, 255)
	testPGM = []byte("P2 3 1 255\n0 128 255\n")
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, b, 0o644))
	return file
}

func TestIsNetpbm(t *testing.T) {
	for name, want := range map[string]bool{
		"a.pbm":         true,
		"a.PGM":         true,
		"dir/a.ppm":     true,
		"a.pnm":         true,
		"a.pam":         true,
		"a.png":         false,
		"ppm":           false,
		"a.ppm.gz":      false,
		"no-extension.": false,
	} {
		assert.Equal(t, want, IsNetpbm(name), name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	v := New(nil, nil, discard())

	m, err := v.Load(writeFile(t, dir, "test.ppm", testPPM))
	require.NoError(t, err)
	assert.Equal(t, "PPM P6", m.Format.String())
	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 2, m.Height)

	bad := writeFile(t, dir, "bad.ppm", []byte("P6 2 2 255\n"))
	_, err = v.Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = v.Load(filepath.Join(dir, "missing.ppm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
