package app

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/keymap"
)

var errEmptyCommand = errors.New("empty command")

// keyMessage resolves a key press against the key table. Outside Edit mode
// global bindings win over the active pane's. In Edit mode the editor owns
// every key.
func (a *App) keyMessage(msg tea.KeyMsg) Message {
	pane := a.ActiveComponent()

	if pane == PaneNoteEditor && a.editing() {
		switch msg.Type {
		case tea.KeyUp:
			return NoteEditorMsg{Action: NoteEditorCursorUp}
		case tea.KeyDown:
			return NoteEditorMsg{Action: NoteEditorCursorDown}
		case tea.KeyEsc:
			return NoteEditorMsg{Action: NoteEditorExitMode}
		case tea.KeyBackspace:
			return NoteEditorMsg{Action: NoteEditorDelete}
		}
		return NoteEditorMsg{Action: NoteEditorKey, Key: msg}
	}

	if cmd, ok := a.keys.Resolve(keymap.ScopeGlobal, msg); ok {
		return a.commandMessage(cmd)
	}
	if cmd, ok := a.keys.Resolve(pane.Scope(), msg); ok {
		return a.commandMessage(cmd)
	}
	return nil
}

func (a *App) editing() bool {
	return a.doc != nil && a.doc.Mode() == document.Edit
}

// commandMessage turns a bound command into the message that carries it out.
// Experimental editor commands do nothing unless the experimental editor is
// enabled.
func (a *App) commandMessage(c keymap.Command) Message {
	experimental := a.cfg.ExperimentalEditor

	switch c.Action {
	case keymap.Quit:
		return QuitMsg{}
	case keymap.Exec:
		return ExecMsg{Template: c.Template}
	case keymap.Spawn:
		return SpawnMsg{Template: c.Template}

	case keymap.SplashUp:
		return SplashMsg{Action: SplashUp}
	case keymap.SplashDown:
		return SplashMsg{Action: SplashDown}
	case keymap.SplashOpen:
		return SplashMsg{Action: SplashOpen}

	case keymap.ExplorerUp:
		return ExplorerMsg{Action: ExplorerUp}
	case keymap.ExplorerDown:
		return ExplorerMsg{Action: ExplorerDown}
	case keymap.ExplorerOpen:
		return ExplorerMsg{Action: ExplorerOpen}
	case keymap.ExplorerSort:
		return ExplorerMsg{Action: ExplorerSort}
	case keymap.ExplorerToggle:
		return ExplorerMsg{Action: ExplorerToggle}
	case keymap.ExplorerToggleOutline:
		return ExplorerMsg{Action: ExplorerToggleOutline}
	case keymap.ExplorerSwitchPaneNext:
		return ExplorerMsg{Action: ExplorerSwitchPaneNext}
	case keymap.ExplorerSwitchPanePrevious:
		return ExplorerMsg{Action: ExplorerSwitchPanePrevious}
	case keymap.ExplorerScrollUpOne:
		return ExplorerMsg{Action: ExplorerScrollUp, Amount: ScrollOne}
	case keymap.ExplorerScrollDownOne:
		return ExplorerMsg{Action: ExplorerScrollDown, Amount: ScrollOne}
	case keymap.ExplorerScrollUpHalfPage:
		return ExplorerMsg{Action: ExplorerScrollUp, Amount: ScrollHalfPage}
	case keymap.ExplorerScrollDownHalfPage:
		return ExplorerMsg{Action: ExplorerScrollDown, Amount: ScrollHalfPage}

	case keymap.OutlineUp:
		return OutlineMsg{Action: OutlineUp}
	case keymap.OutlineDown:
		return OutlineMsg{Action: OutlineDown}
	case keymap.OutlineSelect:
		return OutlineMsg{Action: OutlineSelect}
	case keymap.OutlineExpand:
		return OutlineMsg{Action: OutlineExpand}
	case keymap.OutlineToggle:
		return OutlineMsg{Action: OutlineToggle}
	case keymap.OutlineToggleExplorer:
		return OutlineMsg{Action: OutlineToggleExplorer}
	case keymap.OutlineSwitchPaneNext:
		return OutlineMsg{Action: OutlineSwitchPaneNext}
	case keymap.OutlineSwitchPanePrevious:
		return OutlineMsg{Action: OutlineSwitchPanePrevious}

	case keymap.HelpModalToggle:
		return HelpModalMsg{Action: HelpModalToggle}
	case keymap.HelpModalClose:
		return HelpModalMsg{Action: HelpModalClose}
	case keymap.HelpModalScrollUpOne:
		return HelpModalMsg{Action: HelpModalScrollUp, Amount: ScrollOne}
	case keymap.HelpModalScrollDownOne:
		return HelpModalMsg{Action: HelpModalScrollDown, Amount: ScrollOne}
	case keymap.HelpModalScrollUpHalfPage:
		return HelpModalMsg{Action: HelpModalScrollUp, Amount: ScrollHalfPage}
	case keymap.HelpModalScrollDownHalfPage:
		return HelpModalMsg{Action: HelpModalScrollDown, Amount: ScrollHalfPage}

	case keymap.NoteEditorScrollUpOne:
		return NoteEditorMsg{Action: NoteEditorScrollUp, Amount: ScrollOne}
	case keymap.NoteEditorScrollDownOne:
		return NoteEditorMsg{Action: NoteEditorScrollDown, Amount: ScrollOne}
	case keymap.NoteEditorScrollUpHalfPage:
		return NoteEditorMsg{Action: NoteEditorScrollUp, Amount: ScrollHalfPage}
	case keymap.NoteEditorScrollDownHalfPage:
		return NoteEditorMsg{Action: NoteEditorScrollDown, Amount: ScrollHalfPage}
	case keymap.NoteEditorSwitchPaneNext:
		return NoteEditorMsg{Action: NoteEditorSwitchPaneNext}
	case keymap.NoteEditorSwitchPanePrevious:
		return NoteEditorMsg{Action: NoteEditorSwitchPanePrevious}
	case keymap.NoteEditorToggleExplorer:
		return NoteEditorMsg{Action: NoteEditorToggleExplorer}
	case keymap.NoteEditorToggleOutline:
		return NoteEditorMsg{Action: NoteEditorToggleOutline}
	case keymap.NoteEditorCursorUp:
		return NoteEditorMsg{Action: NoteEditorCursorUp}
	case keymap.NoteEditorCursorDown:
		return NoteEditorMsg{Action: NoteEditorCursorDown}

	case keymap.VaultSelectorModalUp:
		return VaultSelectorMsg{Action: VaultSelectorUp}
	case keymap.VaultSelectorModalDown:
		return VaultSelectorMsg{Action: VaultSelectorDown}
	case keymap.VaultSelectorModalClose:
		return VaultSelectorMsg{Action: VaultSelectorClose}
	case keymap.VaultSelectorModalOpen:
		return VaultSelectorMsg{Action: VaultSelectorSelect}
	case keymap.VaultSelectorModalToggle:
		return VaultSelectorMsg{Action: VaultSelectorToggle}
	}

	if !experimental {
		return nil
	}
	switch c.Action {
	case keymap.NoteEditorExperimentalCursorWordForward:
		return NoteEditorMsg{Action: NoteEditorCursorWordForward}
	case keymap.NoteEditorExperimentalCursorWordBackward:
		return NoteEditorMsg{Action: NoteEditorCursorWordBackward}
	case keymap.NoteEditorExperimentalSetEditMode:
		return NoteEditorMsg{Action: NoteEditorEditMode}
	case keymap.NoteEditorExperimentalSetReadMode:
		return NoteEditorMsg{Action: NoteEditorReadMode}
	case keymap.NoteEditorExperimentalSave:
		return NoteEditorMsg{Action: NoteEditorSave}
	case keymap.NoteEditorExperimentalExitMode:
		return NoteEditorMsg{Action: NoteEditorExitMode}
	case keymap.NoteEditorExperimentalCursorLeft:
		return NoteEditorMsg{Action: NoteEditorCursorLeft}
	case keymap.NoteEditorExperimentalCursorRight:
		return NoteEditorMsg{Action: NoteEditorCursorRight}
	}
	return nil
}

// templateVars are the values command templates can refer to.
func (a *App) templateVars() keymap.Vars {
	v := keymap.Vars{Vault: a.vault.Name}
	if a.selected != nil {
		v.NotePath = a.selected.Path
		v.Note = a.selected.Name
	}
	return v
}

// command builds the process for a template. Arguments are split on
// whitespace after expansion; there is no shell quoting.
func (a *App) command(template string) (*exec.Cmd, error) {
	args := strings.Fields(keymap.Expand(template, a.templateVars()))
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %q", errEmptyCommand, template)
	}
	c := exec.Command(args[0], args[1:]...)
	c.Dir = a.vault.Path
	return c, nil
}

// execCmd hands the terminal to the process until it exits.
func (a *App) execCmd(template string) (Message, tea.Cmd) {
	c, err := a.command(template)
	if err != nil {
		return StatusMsg{Err: err}, nil
	}
	a.logger.Info("exec", "cmd", c.String())
	name := c.Args[0]
	return nil, tea.ExecProcess(c, func(err error) tea.Msg {
		return execFinishedMsg{name: name, err: err}
	})
}

// spawnCmd starts the process and reaps it in the background.
func (a *App) spawnCmd(template string) (Message, tea.Cmd) {
	c, err := a.command(template)
	if err != nil {
		return StatusMsg{Err: err}, nil
	}
	a.logger.Info("spawn", "cmd", c.String())
	return nil, func() tea.Msg {
		if err := c.Start(); err != nil {
			return StatusMsg{Err: fmt.Errorf("spawn %s: %w", c.Args[0], err)}
		}
		go func() { _ = c.Wait() }()
		return nil
	}
}
