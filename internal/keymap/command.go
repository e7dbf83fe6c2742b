package keymap

import (
	"fmt"
	"strings"
)

// Action is the closed set of things a key can do.
type Action int

const (
	ActionNone Action = iota
	Quit

	SplashUp
	SplashDown
	SplashOpen

	ExplorerUp
	ExplorerDown
	ExplorerOpen
	ExplorerSort
	ExplorerToggle
	ExplorerToggleOutline
	ExplorerSwitchPaneNext
	ExplorerSwitchPanePrevious
	ExplorerScrollUpOne
	ExplorerScrollDownOne
	ExplorerScrollUpHalfPage
	ExplorerScrollDownHalfPage

	OutlineUp
	OutlineDown
	OutlineSelect
	OutlineExpand
	OutlineToggle
	OutlineToggleExplorer
	OutlineSwitchPaneNext
	OutlineSwitchPanePrevious

	HelpModalScrollUpOne
	HelpModalScrollDownOne
	HelpModalScrollUpHalfPage
	HelpModalScrollDownHalfPage
	HelpModalToggle
	HelpModalClose

	NoteEditorScrollUpOne
	NoteEditorScrollDownOne
	NoteEditorScrollUpHalfPage
	NoteEditorScrollDownHalfPage
	NoteEditorSwitchPaneNext
	NoteEditorSwitchPanePrevious
	NoteEditorToggleExplorer
	NoteEditorToggleOutline
	NoteEditorCursorUp
	NoteEditorCursorDown

	NoteEditorExperimentalCursorWordForward
	NoteEditorExperimentalCursorWordBackward
	NoteEditorExperimentalSetEditMode
	NoteEditorExperimentalSetReadMode
	NoteEditorExperimentalSave
	NoteEditorExperimentalExitMode
	NoteEditorExperimentalCursorLeft
	NoteEditorExperimentalCursorRight

	VaultSelectorModalUp
	VaultSelectorModalDown
	VaultSelectorModalClose
	VaultSelectorModalOpen
	VaultSelectorModalToggle

	// Exec runs a command template in the foreground, handing it the terminal.
	Exec
	// Spawn starts a command template in the background.
	Spawn
)

var actionNames = map[Action]string{
	Quit: "quit",

	SplashUp:   "splash_up",
	SplashDown: "splash_down",
	SplashOpen: "splash_open",

	ExplorerUp:                 "explorer_up",
	ExplorerDown:               "explorer_down",
	ExplorerOpen:               "explorer_open",
	ExplorerSort:               "explorer_sort",
	ExplorerToggle:             "explorer_toggle",
	ExplorerToggleOutline:      "explorer_toggle_outline",
	ExplorerSwitchPaneNext:     "explorer_switch_pane_next",
	ExplorerSwitchPanePrevious: "explorer_switch_pane_previous",
	ExplorerScrollUpOne:        "explorer_scroll_up_one",
	ExplorerScrollDownOne:      "explorer_scroll_down_one",
	ExplorerScrollUpHalfPage:   "explorer_scroll_up_half_page",
	ExplorerScrollDownHalfPage: "explorer_scroll_down_half_page",

	OutlineUp:                 "outline_up",
	OutlineDown:               "outline_down",
	OutlineSelect:             "outline_select",
	OutlineExpand:             "outline_expand",
	OutlineToggle:             "outline_toggle",
	OutlineToggleExplorer:     "outline_toggle_explorer",
	OutlineSwitchPaneNext:     "outline_switch_pane_next",
	OutlineSwitchPanePrevious: "outline_switch_pane_previous",

	HelpModalScrollUpOne:        "help_modal_scroll_up_one",
	HelpModalScrollDownOne:      "help_modal_scroll_down_one",
	HelpModalScrollUpHalfPage:   "help_modal_scroll_up_half_page",
	HelpModalScrollDownHalfPage: "help_modal_scroll_down_half_page",
	HelpModalToggle:             "help_modal_toggle",
	HelpModalClose:              "help_modal_close",

	NoteEditorScrollUpOne:        "note_editor_scroll_up_one",
	NoteEditorScrollDownOne:      "note_editor_scroll_down_one",
	NoteEditorScrollUpHalfPage:   "note_editor_scroll_up_half_page",
	NoteEditorScrollDownHalfPage: "note_editor_scroll_down_half_page",
	NoteEditorSwitchPaneNext:     "note_editor_switch_pane_next",
	NoteEditorSwitchPanePrevious: "note_editor_switch_pane_previous",
	NoteEditorToggleExplorer:     "note_editor_toggle_explorer",
	NoteEditorToggleOutline:      "note_editor_toggle_outline",
	NoteEditorCursorUp:           "note_editor_cursor_up",
	NoteEditorCursorDown:         "note_editor_cursor_down",

	NoteEditorExperimentalCursorWordForward:  "note_editor_experimental_cursor_word_forward",
	NoteEditorExperimentalCursorWordBackward: "note_editor_experimental_cursor_word_backward",
	NoteEditorExperimentalSetEditMode:        "note_editor_experimental_set_edit_mode",
	NoteEditorExperimentalSetReadMode:        "note_editor_experimental_set_read_mode",
	NoteEditorExperimentalSave:               "note_editor_experimental_save",
	NoteEditorExperimentalExitMode:           "note_editor_experimental_exit_mode",
	NoteEditorExperimentalCursorLeft:         "note_editor_experimental_cursor_left",
	NoteEditorExperimentalCursorRight:        "note_editor_experimental_cursor_right",

	VaultSelectorModalUp:     "vault_selector_modal_up",
	VaultSelectorModalDown:   "vault_selector_modal_down",
	VaultSelectorModalClose:  "vault_selector_modal_close",
	VaultSelectorModalOpen:   "vault_selector_modal_open",
	VaultSelectorModalToggle: "vault_selector_modal_toggle",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

func (a Action) String() string {
	switch a {
	case Exec:
		return "exec"
	case Spawn:
		return "spawn"
	}
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Command is an action, plus a template for Exec and Spawn.
type Command struct {
	Action   Action
	Template string
}

// Cmd wraps a plain action.
func Cmd(a Action) Command { return Command{Action: a} }

// ParseCommand parses a command name or an "exec:"/"spawn:" template.
func ParseCommand(s string) (Command, error) {
	if t, ok := strings.CutPrefix(s, "exec:"); ok {
		return Command{Action: Exec, Template: t}, nil
	}
	if t, ok := strings.CutPrefix(s, "spawn:"); ok {
		return Command{Action: Spawn, Template: t}, nil
	}
	a, ok := actionsByName[s]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	return Command{Action: a}, nil
}

func (c Command) String() string {
	if c.Action == Exec || c.Action == Spawn {
		return c.Action.String() + ":" + c.Template
	}
	return c.Action.String()
}

// Vars are the values substituted into command templates.
type Vars struct {
	Vault    string // vault name
	NotePath string // absolute path
	Note     string
}

// Expand substitutes %vault, %note_path and %note in that order, so a
// %note_path placeholder is never read as %note followed by "_path".
func Expand(template string, v Vars) string {
	s := strings.ReplaceAll(template, "%vault", v.Vault)
	s = strings.ReplaceAll(s, "%note_path", v.NotePath)
	return strings.ReplaceAll(s, "%note", v.Note)
}
