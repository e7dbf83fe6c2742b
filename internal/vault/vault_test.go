package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"), "b")
	writeFile(t, filepath.Join(root, "a.md"), "a")
	writeFile(t, filepath.Join(root, "image.png"), "")
	writeFile(t, filepath.Join(root, "notes", "c.md"), "c")
	writeFile(t, filepath.Join(root, ".obsidian", "app.json"), "{}")
	writeFile(t, filepath.Join(root, ".hidden.md"), "")

	entries, err := New("", root).Entries()
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		path  string
		isDir bool
		depth int
	}{
		{"notes", true, 0},
		{"a.md", false, 0},
		{"b.md", false, 0},
		{filepath.Join("notes", "c.md"), false, 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, w := range want {
		if entries[i].Path != w.path || entries[i].IsDir != w.isDir || entries[i].Depth != w.depth {
			t.Errorf("[%d] got %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestEntriesMissingVault(t *testing.T) {
	_, err := New("gone", filepath.Join(t.TempDir(), "nope")).Entries()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewNamesAfterDirectory(t *testing.T) {
	v := New("", "/home/me/Notes")
	if v.Name != "Notes" {
		t.Errorf("name: got %q, want %q", v.Name, "Notes")
	}
}

func TestNoteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Daily Log.md")
	writeFile(t, path, "old")

	note := NoteFromPath(path)
	if note.Name != "Daily Log" {
		t.Errorf("name: got %q", note.Name)
	}

	if err := WriteNote(path, "# New\n\ncontent"); err != nil {
		t.Fatal(err)
	}
	got, err := note.ReadToString()
	if err != nil {
		t.Fatal(err)
	}
	if got != "# New\n\ncontent" {
		t.Errorf("got %q", got)
	}
}

func TestWriteNoteMissingDirectory(t *testing.T) {
	err := WriteNote(filepath.Join(t.TempDir(), "missing", "a.md"), "x")
	if err == nil {
		t.Fatal("expected error")
	}
}
