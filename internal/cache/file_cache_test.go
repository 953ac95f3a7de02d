package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coefficients struct {
	Mult float64 `json:"mult"`
	Add  float64 `json:"add"`
}

func TestFileCache_SetGet(t *testing.T) {
	fc := NewFileCache[coefficients](filepath.Join(t.TempDir(), "mtl"))
	key := fc.GenerateKey("scene", 5)

	_, ok := fc.Get(key)
	assert.False(t, ok)

	require.NoError(t, fc.Set(key, coefficients{Mult: 2e-5, Add: -0.1}))

	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, coefficients{Mult: 2e-5, Add: -0.1}, got)
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCache[coefficients](dir)
	key := fc.GenerateKey("scene")
	require.NoError(t, fc.Set(key, coefficients{Mult: 1}))

	tampered := `{"data":{"mult":2,"add":0},"created_at":"2019-10-20T00:00:00Z","checksum":"deadbeef"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), []byte(tampered), 0o644))

	_, ok := fc.Get(key)
	assert.False(t, ok)
}

func TestFileCache_FileKeyChangesWithContent(t *testing.T) {
	fc := NewFileCache[coefficients](t.TempDir())
	path := filepath.Join(t.TempDir(), "scene_MTL.txt")
	require.NoError(t, os.WriteFile(path, []byte("SUN_ELEVATION = 30\n"), 0o644))

	first, err := fc.FileKey(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("SUN_ELEVATION = 45.5\n"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := fc.FileKey(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = fc.FileKey(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
