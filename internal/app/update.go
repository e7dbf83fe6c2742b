package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/outline"
	"github.com/pfassina/scoria/internal/vault"
)

// dispatch applies msg and every follow-up message it produces, without
// rendering in between, and batches the side effects.
func (a *App) dispatch(msg Message) tea.Cmd {
	var cmds []tea.Cmd
	for msg != nil {
		next, cmd := a.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		msg = next
	}
	a.refreshStatus()
	return tea.Batch(cmds...)
}

// update applies exactly one message and returns the next one, if any.
func (a *App) update(msg Message) (Message, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		a.Close()
		return nil, tea.Quit
	case ResizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.updateLayout()
	case SetActivePaneMsg:
		a.setActive(msg.Pane)
	case OpenVaultMsg:
		return a.openVault(msg.Vault)
	case SelectNoteMsg:
		return a.selectNote(msg.Note), nil
	case UpdateSelectedNoteContentMsg:
		return a.updateSelectedNoteContent(msg), nil
	case ExecMsg:
		return a.execCmd(msg.Template)
	case SpawnMsg:
		return a.spawnCmd(msg.Template)
	case execFinishedMsg:
		if msg.err != nil {
			return StatusMsg{Err: fmt.Errorf("exec %s: %w", msg.name, msg.err)}, nil
		}
		if err := a.explorer.Refresh(); err != nil {
			a.logger.Warn("refresh explorer", "err", err)
		}
		if a.selected != nil {
			return SelectNoteMsg{Note: *a.selected}, nil
		}
	case StatusMsg:
		if msg.Err == nil {
			a.status.ClearError()
			return nil, nil
		}
		a.logger.Error("status", "err", msg.Err)
		a.status.SetError(msg.Err.Error())
	case VaultChangedMsg:
		if err := a.explorer.Refresh(); err != nil {
			return StatusMsg{Err: err}, nil
		}

	case SplashMsg:
		return a.updateSplash(msg), nil
	case ExplorerMsg:
		return a.updateExplorer(msg), nil
	case OutlineMsg:
		return a.updateOutline(msg), nil
	case NoteEditorMsg:
		return a.updateNoteEditor(msg), nil
	case HelpModalMsg:
		a.updateHelp(msg)
	case VaultSelectorMsg:
		return a.updateVaultSelector(msg), nil
	}
	return nil, nil
}

func (a *App) openVault(v vault.Vault) (Message, tea.Cmd) {
	if err := a.explorer.Load(v); err != nil {
		return StatusMsg{Err: err}, nil
	}
	a.logger.Info("open vault", "name", v.Name, "path", v.Path)

	a.vault = v
	a.selected = nil
	a.content = ""
	a.doc = nil
	a.revision = 0
	a.editor.SetDocument(nil, "")
	a.outline.SetTree(nil)
	a.explorer.SetOpen(true)
	a.splash.Hide()
	a.help.Close()
	a.selector.Close()
	a.status.SetVault(v.Name)
	a.updateLayout()
	a.watch(v)

	a.session.LastVault = v.Path
	a.session.LastNote = ""
	a.session.ShowExplorer = true
	a.saveSession()

	return SetActivePaneMsg{Pane: PaneExplorer}, nil
}

// selectNote loads a note into a fresh document. Unsaved edits of the
// previous note are dropped.
func (a *App) selectNote(note vault.Note) Message {
	var next Message
	content, err := note.ReadToString()
	if err != nil {
		next = StatusMsg{Err: err}
		content = ""
	}

	mode := document.Read
	if a.cfg.ExperimentalEditor && a.doc != nil {
		mode = a.doc.Mode()
	}

	a.selected = &note
	a.content = content
	a.doc = document.New(note.Path, content, mode)
	a.revision = a.doc.Revision()
	a.editor.SetDocument(a.doc, note.Name)
	a.editor.Sync(true)

	tree := outline.New(a.doc.Blocks())
	tree.SelectAt(a.doc.Row())
	a.outline.SetTree(tree)

	if rel, err := filepath.Rel(a.vault.Path, note.Path); err == nil {
		a.explorer.SetCurrent(rel)
		a.session.LastNote = rel
	}
	return next
}

func (a *App) updateSelectedNoteContent(msg UpdateSelectedNoteContentMsg) Message {
	a.content = msg.Content
	if msg.Blocks == nil || a.doc == nil {
		return nil
	}
	a.outline.SetTree(outline.New(msg.Blocks))
	return OutlineMsg{Action: OutlineSelectAt, Row: a.doc.Row()}
}

// contentChanged reports a re-parse of the document since the last snapshot.
func (a *App) contentChanged() (Message, bool) {
	if a.doc == nil || a.doc.Revision() == a.revision {
		return nil, false
	}
	a.revision = a.doc.Revision()
	return UpdateSelectedNoteContentMsg{Content: a.doc.Content(), Blocks: a.doc.Blocks()}, true
}

func (a *App) updateSplash(msg SplashMsg) Message {
	switch msg.Action {
	case SplashUp:
		a.splash.Up()
	case SplashDown:
		a.splash.Down()
	case SplashOpen:
		if v, ok := a.splash.Selected(); ok {
			return OpenVaultMsg{Vault: v}
		}
	}
	return nil
}

func (a *App) updateExplorer(msg ExplorerMsg) Message {
	switch msg.Action {
	case ExplorerUp:
		a.explorer.Up()
	case ExplorerDown:
		a.explorer.Down()
	case ExplorerScrollUp:
		a.explorer.Scroll(-msg.Amount.lines(a.explorer.Height()))
	case ExplorerScrollDown:
		a.explorer.Scroll(msg.Amount.lines(a.explorer.Height()))
	case ExplorerOpen:
		entry, ok := a.explorer.Selected()
		if !ok {
			return nil
		}
		if entry.IsDir {
			a.explorer.ToggleDir(entry.Path)
			return nil
		}
		return SelectNoteMsg{Note: a.vault.Note(entry.Path)}
	case ExplorerSort:
		a.explorer.ToggleSort()
	case ExplorerToggle:
		return a.toggleExplorer()
	case ExplorerToggleOutline:
		return a.toggleOutline()
	case ExplorerSwitchPaneNext:
		return SetActivePaneMsg{Pane: a.cycle(PaneExplorer, true)}
	case ExplorerSwitchPanePrevious:
		return SetActivePaneMsg{Pane: a.cycle(PaneExplorer, false)}
	}
	return nil
}

func (a *App) updateOutline(msg OutlineMsg) Message {
	tree := a.outline.Tree()
	switch msg.Action {
	case OutlineUp:
		tree.Up()
	case OutlineDown:
		tree.Down()
	case OutlineSelect:
		if e, ok := tree.Selected(); ok {
			return NoteEditorMsg{Action: NoteEditorSetRow, Row: e.Row}
		}
	case OutlineExpand:
		tree.Toggle()
	case OutlineToggle:
		return a.toggleOutline()
	case OutlineToggleExplorer:
		return a.toggleExplorer()
	case OutlineSelectAt:
		tree.SelectAt(msg.Row)
	case OutlineSwitchPaneNext:
		return SetActivePaneMsg{Pane: a.cycle(PaneOutline, true)}
	case OutlineSwitchPanePrevious:
		return SetActivePaneMsg{Pane: a.cycle(PaneOutline, false)}
	}
	return nil
}

// toggleExplorer opens or closes the explorer. Opening it focuses it;
// closing it while focused moves focus to the editor.
func (a *App) toggleExplorer() Message {
	a.explorer.SetOpen(!a.explorer.IsOpen())
	a.session.ShowExplorer = a.explorer.IsOpen()
	a.updateLayout()
	switch {
	case a.explorer.IsOpen():
		return SetActivePaneMsg{Pane: PaneExplorer}
	case a.active == PaneExplorer:
		return SetActivePaneMsg{Pane: PaneNoteEditor}
	}
	return nil
}

// toggleOutline opens or closes the outline. Opening it focuses it; closing
// it while focused moves focus to the editor.
func (a *App) toggleOutline() Message {
	a.outline.SetOpen(!a.outline.IsOpen())
	a.session.ShowOutline = a.outline.IsOpen()
	a.updateLayout()
	switch {
	case a.outline.IsOpen():
		return SetActivePaneMsg{Pane: PaneOutline}
	case a.active == PaneOutline:
		return SetActivePaneMsg{Pane: PaneNoteEditor}
	}
	return nil
}

func (a *App) updateNoteEditor(msg NoteEditorMsg) Message {
	switch msg.Action {
	case NoteEditorSwitchPaneNext:
		return SetActivePaneMsg{Pane: a.cycle(PaneNoteEditor, true)}
	case NoteEditorSwitchPanePrevious:
		return SetActivePaneMsg{Pane: a.cycle(PaneNoteEditor, false)}
	case NoteEditorToggleExplorer:
		return a.toggleExplorer()
	case NoteEditorToggleOutline:
		return a.toggleOutline()
	}

	doc := a.doc
	if doc == nil {
		return nil
	}

	switch msg.Action {
	case NoteEditorSave:
		saved, err := doc.Save()
		if err != nil {
			return StatusMsg{Err: err}
		}
		if saved {
			a.logger.Info("saved note", "path", doc.Path())
		}
		next, _ := a.contentChanged()
		return next

	case NoteEditorEditMode:
		doc.EnterEdit()
		a.editor.Sync(true)

	case NoteEditorExitMode:
		switch doc.Mode() {
		case document.Edit:
			doc.ExitEdit()
		case document.Read:
			doc.SetMode(document.View)
		}
		a.editor.Sync(true)
		next, _ := a.contentChanged()
		return next

	case NoteEditorReadMode:
		doc.SetMode(document.Read)
		a.editor.Sync(true)
		next, _ := a.contentChanged()
		return next

	case NoteEditorKey:
		doc.Input(msg.Key)
		a.editor.Sync(true)

	case NoteEditorDelete:
		doc.Delete()
		a.editor.Sync(true)
		if next, ok := a.contentChanged(); ok {
			return next
		}
		return OutlineMsg{Action: OutlineSelectAt, Row: doc.Row()}

	case NoteEditorCursorUp, NoteEditorCursorDown:
		return a.moveCursor(msg.Action == NoteEditorCursorUp, 1)

	case NoteEditorScrollUp, NoteEditorScrollDown:
		up := msg.Action == NoteEditorScrollUp
		if doc.Mode() == document.Edit {
			return a.moveCursor(up, 1)
		}
		n := msg.Amount.lines(a.editor.Height())
		if up {
			n = -n
		}
		doc.ScrollBy(n)
		a.editor.Sync(false)

	case NoteEditorCursorLeft:
		a.move(document.MoveLeft)
	case NoteEditorCursorRight:
		a.move(document.MoveRight)
	case NoteEditorCursorWordForward:
		a.move(document.MoveWordForward)
	case NoteEditorCursorWordBackward:
		a.move(document.MoveWordBackward)

	case NoteEditorSetRow:
		doc.SetRow(msg.Row)
		a.editor.Sync(true)
		if next, ok := a.contentChanged(); ok {
			return next
		}
		return OutlineMsg{Action: OutlineSelectAt, Row: doc.Row()}
	}
	return nil
}

// moveCursor moves the editor cursor a line. Read mode has no cursor, so
// the note scrolls instead.
func (a *App) moveCursor(up bool, lines int) Message {
	doc := a.doc
	if doc.Mode() == document.Read {
		if up {
			lines = -lines
		}
		doc.ScrollBy(lines)
		a.editor.Sync(false)
		return nil
	}

	if up {
		doc.CursorUp()
	} else {
		doc.CursorDown()
	}
	a.editor.Sync(true)
	if next, ok := a.contentChanged(); ok {
		return next
	}
	return OutlineMsg{Action: OutlineSelectAt, Row: doc.Row()}
}

func (a *App) move(m document.Motion) {
	if a.doc.Mode() == document.Read {
		return
	}
	a.doc.Move(m)
	a.editor.Sync(true)
}

func (a *App) updateHelp(msg HelpModalMsg) {
	switch msg.Action {
	case HelpModalToggle:
		a.help.Toggle()
	case HelpModalClose:
		a.help.Close()
	case HelpModalScrollUp:
		a.help.ScrollUp(msg.Amount.lines(a.help.Height()))
	case HelpModalScrollDown:
		a.help.ScrollDown(msg.Amount.lines(a.help.Height()))
	}
}

func (a *App) updateVaultSelector(msg VaultSelectorMsg) Message {
	switch msg.Action {
	case VaultSelectorToggle:
		a.selector.Toggle(a.vault.Path)
	case VaultSelectorUp:
		a.selector.Up()
	case VaultSelectorDown:
		a.selector.Down()
	case VaultSelectorClose:
		a.selector.Close()
	case VaultSelectorSelect:
		v, ok := a.selector.Selected()
		a.selector.Close()
		if ok {
			return OpenVaultMsg{Vault: v}
		}
	}
	return nil
}

// saveSession persists the session state, logging failures.
func (a *App) saveSession() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.session); err != nil {
		a.logger.Warn("save session", "path", a.store.Path(), "err", err)
	}
}
