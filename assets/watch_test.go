package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsLevelFile(t *testing.T) {
	for name, want := range map[string]bool{
		"levels/level1.tmx": true,
		"levels/TILES.TSX":  true,
		"levels/tiles.png":  true,
		"levels/notes.txt":  false,
		"levels/level1":     false,
	} {
		require.Equal(t, want, IsLevelFile(name), name)
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	p := filepath.Join(dir, "a.tmx")
	require.NoError(t, os.WriteFile(p, []byte("<map/>"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, p, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a.tmx")
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}
