package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultsCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	notes := filepath.Join(dir, "notes")
	if err := os.MkdirAll(notes, 0755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "scoria.toml")
	cfg := "[[vaults]]\nname = \"work\"\npath = \"" + notes + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"vaults", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "work\t"+notes {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "scoria", "scoria.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestVaultsCommandBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"vaults", "--log-level", "loud"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}
