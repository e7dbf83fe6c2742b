package app

import (
	"fmt"

	"github.com/pfassina/scoria/internal/keymap"
)

// Pane is a component that can receive key input.
type Pane int

const (
	PaneSplash Pane = iota
	PaneExplorer
	PaneNoteEditor
	PaneOutline
	PaneHelpModal
	PaneVaultSelectorModal
)

func (p Pane) String() string {
	switch p {
	case PaneSplash:
		return "splash"
	case PaneExplorer:
		return "explorer"
	case PaneNoteEditor:
		return "note_editor"
	case PaneOutline:
		return "outline"
	case PaneHelpModal:
		return "help_modal"
	case PaneVaultSelectorModal:
		return "vault_selector_modal"
	}
	return fmt.Sprintf("pane(%d)", int(p))
}

// Scope is the key binding scope of the pane.
func (p Pane) Scope() keymap.Scope {
	switch p {
	case PaneSplash:
		return keymap.ScopeSplash
	case PaneExplorer:
		return keymap.ScopeExplorer
	case PaneOutline:
		return keymap.ScopeOutline
	case PaneHelpModal:
		return keymap.ScopeHelpModal
	case PaneVaultSelectorModal:
		return keymap.ScopeVaultSelectorModal
	}
	return keymap.ScopeNoteEditor
}

// panes is the focus cycle of the background panes.
var panes = []Pane{PaneExplorer, PaneNoteEditor, PaneOutline}

// ActiveComponent returns the pane that owns key input. Visible modals and
// the splash screen take precedence over the focused background pane.
func (a *App) ActiveComponent() Pane {
	switch {
	case a.help.Visible():
		return PaneHelpModal
	case a.selector.Visible():
		return PaneVaultSelectorModal
	case a.splash.Visible():
		return PaneSplash
	}
	return a.active
}

// ActivePane returns the focused background pane.
func (a *App) ActivePane() Pane { return a.active }

func (a *App) isOpen(p Pane) bool {
	switch p {
	case PaneExplorer:
		return a.explorer.IsOpen()
	case PaneOutline:
		return a.outline.IsOpen()
	}
	return true
}

// cycle returns the next open pane after from, going backwards when forward
// is false. Closed panes are skipped; the editor is always open.
func (a *App) cycle(from Pane, forward bool) Pane {
	i := 0
	for j, p := range panes {
		if p == from {
			i = j
		}
	}
	step := 1
	if !forward {
		step = len(panes) - 1
	}
	for n := 0; n < len(panes); n++ {
		i = (i + step) % len(panes)
		if a.isOpen(panes[i]) {
			return panes[i]
		}
	}
	return PaneNoteEditor
}

func (a *App) setActive(p Pane) {
	switch p {
	case PaneExplorer, PaneNoteEditor, PaneOutline:
	default:
		return
	}
	if !a.isOpen(p) {
		p = PaneNoteEditor
	}
	a.active = p
	a.explorer.SetActive(p == PaneExplorer)
	a.editor.SetActive(p == PaneNoteEditor)
	a.outline.SetActive(p == PaneOutline)
}
