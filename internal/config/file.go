package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Vaults             []VaultConfig     `toml:"vaults"`
	ObsidianConfig     *string           `toml:"obsidian_config"`
	Listen             *string           `toml:"listen"`
	Theme              *string           `toml:"theme"`
	Colors             map[string]string `toml:"colors"`
	LogLevel           *string           `toml:"log_level"`
	ExperimentalEditor *bool             `toml:"experimental_editor"`
	WatchVault         *bool             `toml:"watch_vault"`
	ExplorerWidth      *int              `toml:"explorer_width"`
	OutlineWidth       *int              `toml:"outline_width"`

	Global             *scopeConfig `toml:"global"`
	Splash             *scopeConfig `toml:"splash"`
	Explorer           *scopeConfig `toml:"explorer"`
	Outline            *scopeConfig `toml:"outline"`
	NoteEditor         *scopeConfig `toml:"note_editor"`
	HelpModal          *scopeConfig `toml:"help_modal"`
	VaultSelectorModal *scopeConfig `toml:"vault_selector_modal"`
}

// ConfigDir returns the scoria config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scoria")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scoria")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// StateDir returns where logs, the session and the ssh host key live,
// respecting XDG_STATE_HOME.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "scoria")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "scoria")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	return LoadFrom(ConfigPath(), cfg)
}

// LoadFrom is LoadFile for an explicit path.
func LoadFrom(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return true, fmt.Errorf("parse %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	for _, v := range fc.Vaults {
		if v.Path == "" {
			return true, fmt.Errorf("parse %s: vault %q has no path", path, v.Name)
		}
		v.Path = ExpandHome(v.Path)
		cfg.Vaults = append(cfg.Vaults, v)
	}
	if fc.ObsidianConfig != nil {
		cfg.ObsidianConfig = ExpandHome(*fc.ObsidianConfig)
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if len(fc.Colors) > 0 {
		cfg.Colors = fc.Colors
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.ExperimentalEditor != nil {
		cfg.ExperimentalEditor = *fc.ExperimentalEditor
	}
	if fc.WatchVault != nil {
		cfg.WatchVault = *fc.WatchVault
	}
	if fc.ExplorerWidth != nil {
		cfg.ExplorerWidth = *fc.ExplorerWidth
	}
	if fc.OutlineWidth != nil {
		cfg.OutlineWidth = *fc.OutlineWidth
	}

	if err := fc.mergeKeys(cfg.Keys); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}

	return true, nil
}

// SaveVault appends a vault to config.toml, creating the file if needed.
func SaveVault(v VaultConfig) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	if home != "" && strings.HasPrefix(v.Path, home+string(os.PathSeparator)) {
		v.Path = "~" + v.Path[len(home):]
	}

	f, err := os.OpenFile(filepath.Join(dir, "config.toml"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(struct {
		Vaults []VaultConfig `toml:"vaults"`
	}{Vaults: []VaultConfig{v}})
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
