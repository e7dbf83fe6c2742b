package vault

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func startWatcher(t *testing.T, root string) <-chan struct{} {
	t.Helper()
	changes := make(chan struct{}, 16)
	w, err := NewWatcher(New("", root), log.New(io.Discard), func() { changes <- struct{}{} })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	go w.Start()
	t.Cleanup(func() { _ = w.Stop() })
	return changes
}

func expectChange(t *testing.T, changes <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: no change reported", what)
	}
}

func expectQuiet(t *testing.T, changes <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-changes:
		t.Fatalf("%s: unexpected change", what)
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcherReportsNewNoteOnce(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	writeFile(t, filepath.Join(root, "a.md"), "a")
	expectChange(t, changes, "new note")
	expectQuiet(t, changes, "after the burst")

	if err := os.Remove(filepath.Join(root, "a.md")); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changes, "removed note")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	writeFile(t, filepath.Join(root, "image.png"), "")
	writeFile(t, filepath.Join(root, ".draft.md"), "")
	expectQuiet(t, changes, "non-note files")

	// Edits to an existing note do not change the tree.
	writeFile(t, filepath.Join(root, "image.png"), "more")
	expectQuiet(t, changes, "write")
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changes, "new directory")

	writeFile(t, filepath.Join(root, "sub", "b.md"), "b")
	expectChange(t, changes, "note in new directory")
}
