package shaderwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitChange(w *Watcher, timeout time.Duration) bool {
	select {
	case <-w.Changes():
		return true
	case <-time.After(timeout):
		return false
	}
}

func drain(w *Watcher) {
	for waitChange(w, 100*time.Millisecond) {
	}
}

func TestWatchWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\nA\n"), 0644))
	require.True(t, waitChange(w, 2*time.Second), "expected change notification")
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.shader"), []byte("x"), 0644))
	require.False(t, waitChange(w, 300*time.Millisecond), "unrelated file must not notify")
}

func TestWatchRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, ".basic.shader.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("#shader fragment\n"), 0644))
	drain(w)

	require.NoError(t, os.Rename(tmp, path))
	require.True(t, waitChange(w, 2*time.Second), "expected change after rename")
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "basic.shader"))
	require.Error(t, err)
}
