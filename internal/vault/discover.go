package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrNoVault is returned by Find when nothing matches the query.
var ErrNoVault = errors.New("no matching vault")

type obsidianConfig struct {
	Vaults map[string]struct {
		Path string `json:"path"`
		Open bool   `json:"open"`
	} `json:"vaults"`
}

// ObsidianConfigPath returns where Obsidian keeps its list of vaults.
func ObsidianConfigPath() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "obsidian", "obsidian.json")
		}
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "obsidian", "obsidian.json")
}

// LoadObsidian reads the vaults registered in an obsidian.json file.
// A missing file yields no vaults and no error.
func LoadObsidian(path string) ([]Vault, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read obsidian config: %w", err)
	}

	var cfg obsidianConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse obsidian config %s: %w", path, err)
	}

	var vaults []Vault
	for _, v := range cfg.Vaults {
		if v.Path != "" {
			vaults = append(vaults, New("", v.Path))
		}
	}
	return vaults, nil
}

// Discover merges configured vaults with the ones Obsidian knows about.
// Vaults are de-duplicated by path, the configured entry winning, and sorted by name.
func Discover(configured []Vault, obsidianPath string) ([]Vault, error) {
	found, err := LoadObsidian(obsidianPath)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var vaults []Vault
	for _, v := range append(append([]Vault{}, configured...), found...) {
		key := filepath.Clean(v.Path)
		if seen[key] {
			continue
		}
		seen[key] = true
		vaults = append(vaults, v)
	}

	sort.SliceStable(vaults, func(i, j int) bool {
		return strings.ToLower(vaults[i].Name) < strings.ToLower(vaults[j].Name)
	})
	return vaults, nil
}

// Find picks a vault by directory path, exact name, or fuzzy name match.
func Find(vaults []Vault, query string) (Vault, error) {
	if info, err := os.Stat(query); err == nil && info.IsDir() {
		abs, err := filepath.Abs(query)
		if err != nil {
			return Vault{}, err
		}
		for _, v := range vaults {
			if filepath.Clean(v.Path) == abs {
				return v, nil
			}
		}
		return New("", abs), nil
	}

	names := make([]string, len(vaults))
	for i, v := range vaults {
		if strings.EqualFold(v.Name, query) {
			return v, nil
		}
		names[i] = v.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return Vault{}, fmt.Errorf("%w: %q", ErrNoVault, query)
	}
	return vaults[matches[0].Index], nil
}
