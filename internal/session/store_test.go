package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	state, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state != Default() {
		t.Errorf("got %+v, want defaults", state)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewStore(dir)

	state := Default()
	state.LastVault = "/v/notes"
	state.ShowOutline = true
	if err := s.Save(state); err != nil {
		t.Fatal(err)
	}
	state.LastNote = "a.md"
	if err := s.Save(state); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(dir).Load()
	if err != nil {
		t.Fatal(err)
	}
	want := State{LastVault: "/v/notes", LastNote: "a.md", ShowExplorer: true, ShowOutline: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(s.Path(), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	state, err := s.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if state != Default() {
		t.Errorf("corrupt session should fall back to defaults, got %+v", state)
	}
}
