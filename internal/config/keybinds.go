package config

import (
	"fmt"

	"github.com/pfassina/scoria/internal/keymap"
)

// bindingConfig is one entry of a scope's key_bindings array.
type bindingConfig struct {
	Key     string `toml:"key"`
	Command string `toml:"command"`
}

type scopeConfig struct {
	KeyBindings []bindingConfig `toml:"key_bindings"`
}

func (fc *fileConfig) scopes() map[keymap.Scope]*scopeConfig {
	return map[keymap.Scope]*scopeConfig{
		keymap.ScopeGlobal:             fc.Global,
		keymap.ScopeSplash:             fc.Splash,
		keymap.ScopeExplorer:           fc.Explorer,
		keymap.ScopeOutline:            fc.Outline,
		keymap.ScopeNoteEditor:         fc.NoteEditor,
		keymap.ScopeHelpModal:          fc.HelpModal,
		keymap.ScopeVaultSelectorModal: fc.VaultSelectorModal,
	}
}

// mergeKeys validates the configured bindings and lays them over table.
// Nothing is bound unless every entry is valid.
func (fc *fileConfig) mergeKeys(table *keymap.Table) error {
	type pending struct {
		scope   keymap.Scope
		binding keymap.Binding
	}
	var all []pending

	scopes := fc.scopes()
	for _, scope := range keymap.Scopes {
		sc := scopes[scope]
		if sc == nil {
			continue
		}
		for i, kb := range sc.KeyBindings {
			if kb.Key == "" || kb.Command == "" {
				return fmt.Errorf("%s.key_bindings[%d]: key and command are required", scope, i)
			}
			b, err := keymap.ParseBinding(kb.Key, kb.Command)
			if err != nil {
				return fmt.Errorf("%s.key_bindings[%d]: %w", scope, i, err)
			}
			all = append(all, pending{scope, b})
		}
	}

	for _, p := range all {
		table.Bind(p.scope, p.binding)
	}
	return nil
}
