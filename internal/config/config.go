package config

import "github.com/pfassina/scoria/internal/keymap"

// VaultConfig names a vault directory.
type VaultConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

type Config struct {
	Vaults             []VaultConfig
	ObsidianConfig     string // obsidian.json location, empty for the platform default
	Listen             string
	Theme              string
	Colors             map[string]string // per-color theme overrides
	LogLevel           string
	ExperimentalEditor bool
	WatchVault         bool
	ExplorerWidth      int
	OutlineWidth       int
	Keys               *keymap.Table
}

func Default() Config {
	return Config{
		Listen:        ":2222",
		Theme:         "catppuccin",
		LogLevel:      "info",
		ExplorerWidth: 32,
		OutlineWidth:  30,
		Keys:          keymap.Defaults(),
	}
}
