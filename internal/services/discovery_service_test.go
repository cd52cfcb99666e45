package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte{'N', 'P'}, 0o644))
	return path
}

func TestDiscoverTabFiles(t *testing.T) {
	dir := t.TempDir()

	tabID := uuid.MustParse("7bd9a745-68be-4965-87e0-4d745e8a13b7")
	tabPath := touch(t, dir, tabID.String()+".bin")
	oddPath := touch(t, dir, "not-a-guid.bin")

	// Sidecar window-state files must be skipped.
	touch(t, dir, tabID.String()+".0.bin")
	touch(t, dir, tabID.String()+".1.bin")

	// Non-.bin files are ignored entirely.
	touch(t, dir, "readme.txt")

	files, err := NewDiscoveryService(dir).DiscoverTabFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	byPath := map[string]TabFile{}
	for _, f := range files {
		byPath[f.Path] = f
	}

	require.Contains(t, byPath, tabPath)
	assert.Equal(t, tabID, byPath[tabPath].TabID)

	require.Contains(t, byPath, oddPath)
	assert.Equal(t, uuid.Nil, byPath[oddPath].TabID)
}

func TestDiscoverTabFiles_EmptyDirectory(t *testing.T) {
	files, err := NewDiscoveryService(t.TempDir()).DiscoverTabFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}
