package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan string, 8)
	w, err := WatchDirs(func(path string) { changes <- path }, []string{".yaml"}, dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x"), 0o644))

	select {
	case got := <-changes:
		require.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan string, 8)
	w, err := WatchDirs(func(path string) { changes <- path }, []string{".yaml", ".tengo"}, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-changes:
		t.Fatalf("change reported for unwatched extension: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsSafeUnderBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := WatchDirs(func(string) {}, []string{".yaml"}, dir)
	require.NoError(t, err)

	// Pile up events, then close while they may still be in flight.
	for i := 0; i < 20; i++ {
		name := filepath.Join(dir, fmt.Sprintf("l%d.yaml", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatchDirsRejectsBadInput(t *testing.T) {
	_, err := WatchDirs(nil, []string{".yaml"}, t.TempDir())
	require.Error(t, err)

	_, err = WatchDirs(func(string) {}, []string{".yaml"}, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
