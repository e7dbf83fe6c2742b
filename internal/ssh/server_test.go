package ssh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pfassina/scoria/internal/config"
)

func TestNewCreatesHostKey(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Listen = "127.0.0.1:0"

	s, err := New(Options{Config: cfg, StateDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", s.Addr())
	}
	if _, err := os.Stat(filepath.Join(dir, HostKeyFile)); err != nil {
		t.Errorf("host key not created: %v", err)
	}
}
