package keymap

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Scope is the pane a binding applies to.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeSplash
	ScopeExplorer
	ScopeOutline
	ScopeHelpModal
	ScopeNoteEditor
	ScopeVaultSelectorModal
)

// Scopes lists every scope in display order.
var Scopes = []Scope{
	ScopeGlobal,
	ScopeSplash,
	ScopeExplorer,
	ScopeOutline,
	ScopeNoteEditor,
	ScopeHelpModal,
	ScopeVaultSelectorModal,
}

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeSplash:
		return "splash"
	case ScopeExplorer:
		return "explorer"
	case ScopeOutline:
		return "outline"
	case ScopeHelpModal:
		return "help_modal"
	case ScopeNoteEditor:
		return "note_editor"
	case ScopeVaultSelectorModal:
		return "vault_selector_modal"
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

// ParseScope returns the scope with the given config table name.
func ParseScope(name string) (Scope, bool) {
	for _, s := range Scopes {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Binding maps a key to a command.
type Binding struct {
	Key     Key
	Command Command
}

// ParseBinding parses a key string and a command string.
func ParseBinding(key, command string) (Binding, error) {
	k, err := ParseKey(key)
	if err != nil {
		return Binding{}, err
	}
	c, err := ParseCommand(command)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Key: k, Command: c}, nil
}

// keyBinding is the bubbles binding matching b's chord, with the chord and
// command as its help. Chords bubbletea never reports are disabled.
func (b Binding) keyBinding() key.Binding {
	opts := []key.BindingOpt{key.WithHelp(b.Key.String(), b.Command.String())}
	if s, ok := b.Key.TeaString(); ok {
		opts = append(opts, key.WithKeys(s))
	} else {
		opts = append(opts, key.WithDisabled())
	}
	return key.NewBinding(opts...)
}

type entry struct {
	Binding
	key key.Binding
}

// Table holds the bindings of every scope.
type Table struct {
	entries map[Scope][]entry
}

func NewTable() *Table {
	return &Table{entries: make(map[Scope][]entry)}
}

// Bind adds a binding to scope, replacing any binding of the same key.
func (t *Table) Bind(scope Scope, b Binding) {
	e := entry{Binding: b, key: b.keyBinding()}
	list := t.entries[scope]
	for i := range list {
		if list[i].Key == b.Key {
			list[i] = e
			return
		}
	}
	t.entries[scope] = append(list, e)
}

// Bindings returns the bindings of scope in the order they were added.
func (t *Table) Bindings(scope Scope) []Binding {
	list := t.entries[scope]
	out := make([]Binding, len(list))
	for i, e := range list {
		out[i] = e.Binding
	}
	return out
}

// KeyBindings returns the bubbles bindings of scope, for help listings.
func (t *Table) KeyBindings(scope Scope) []key.Binding {
	list := t.entries[scope]
	out := make([]key.Binding, len(list))
	for i, e := range list {
		out[i] = e.key
	}
	return out
}

type keyName string

func (k keyName) String() string { return string(k) }

// Lookup finds the command bound to a key string as reported by bubbletea.
// When two chords report the same string the later binding wins.
func (t *Table) Lookup(scope Scope, s string) (Command, bool) {
	list := t.entries[scope]
	for i := len(list) - 1; i >= 0; i-- {
		if key.Matches(keyName(s), list[i].key) {
			return list[i].Command, true
		}
	}
	return Command{}, false
}

// Resolve finds the command bound to a key press in scope.
func (t *Table) Resolve(scope Scope, msg tea.KeyMsg) (Command, bool) {
	return t.Lookup(scope, KeyString(msg))
}

// KeyString returns the lookup string of a key press. Space is always " ".
func KeyString(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		if msg.Alt {
			return "alt+ "
		}
		return " "
	}
	return msg.String()
}
