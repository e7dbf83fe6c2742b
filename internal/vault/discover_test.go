package vault

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	personal := filepath.Join(dir, "Personal")
	cfgPath := filepath.Join(dir, "obsidian.json")
	writeFile(t, cfgPath, `{"vaults":{
		"a1":{"path":"`+work+`","ts":1,"open":true},
		"b2":{"path":"`+personal+`","ts":2}
	}}`)

	configured := []Vault{{Name: "Job", Path: work + string(filepath.Separator)}}
	vaults, err := Discover(configured, cfgPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(vaults) != 2 {
		t.Fatalf("got %d vaults, want 2: %+v", len(vaults), vaults)
	}
	if vaults[0].Name != "Job" || vaults[1].Name != "Personal" {
		t.Errorf("unexpected order: %+v", vaults)
	}
}

func TestDiscoverMissingObsidianConfig(t *testing.T) {
	vaults, err := Discover([]Vault{{Name: "x", Path: "/x"}}, filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(vaults) != 1 {
		t.Errorf("got %d vaults, want 1", len(vaults))
	}
}

func TestDiscoverMalformedObsidianConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obsidian.json")
	writeFile(t, path, "{not json")
	if _, err := Discover(nil, path); err == nil {
		t.Fatal("expected error")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	vaults := []Vault{
		{Name: "Personal", Path: "/v/personal"},
		{Name: "Work Notes", Path: "/v/work"},
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact name ignores case", "personal", "Personal"},
		{"fuzzy name", "wrkn", "Work Notes"},
		{"directory path", dir, filepath.Base(dir)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(vaults, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.want {
				t.Errorf("got %q, want %q", got.Name, tt.want)
			}
		})
	}

	if _, err := Find(vaults, "zzz"); !errors.Is(err, ErrNoVault) {
		t.Errorf("expected ErrNoVault, got %v", err)
	}
}
