package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/scoria/internal/markdown"
	"github.com/pfassina/scoria/internal/vault"
)

// Message is a semantic message applied by update. Messages are also valid
// tea.Msg values, so background work can post them into the program.
type Message = tea.Msg

// QuitMsg stops the program.
type QuitMsg struct{}

// ResizeMsg carries the new terminal size.
type ResizeMsg struct {
	Width  int
	Height int
}

// SetActivePaneMsg moves focus to a background pane.
type SetActivePaneMsg struct {
	Pane Pane
}

// OpenVaultMsg opens a vault in the explorer.
type OpenVaultMsg struct {
	Vault vault.Vault
}

// SelectNoteMsg opens a note in the editor.
type SelectNoteMsg struct {
	Note vault.Note
}

// UpdateSelectedNoteContentMsg refreshes the snapshot of the selected note.
// Blocks is set when the note was re-parsed and the outline must follow.
type UpdateSelectedNoteContentMsg struct {
	Content string
	Blocks  []markdown.Block
}

// ExecMsg runs a command template in the foreground.
type ExecMsg struct {
	Template string
}

// SpawnMsg starts a command template in the background.
type SpawnMsg struct {
	Template string
}

// StatusMsg reports an error in the status bar. A nil Err clears it.
type StatusMsg struct {
	Err error
}

// VaultChangedMsg is posted by the vault watcher when notes appear, vanish or
// move on disk.
type VaultChangedMsg struct{}

type execFinishedMsg struct {
	name string
	err  error
}

// Scroll is a scroll distance relative to the pane's height.
type Scroll int

const (
	ScrollOne Scroll = iota
	ScrollHalfPage
)

func (s Scroll) lines(height int) int {
	if s == ScrollHalfPage {
		return max(height/2, 1)
	}
	return 1
}

type SplashAction int

const (
	SplashUp SplashAction = iota
	SplashDown
	SplashOpen
)

type SplashMsg struct {
	Action SplashAction
}

type ExplorerAction int

const (
	ExplorerUp ExplorerAction = iota
	ExplorerDown
	ExplorerOpen
	ExplorerSort
	ExplorerToggle
	ExplorerToggleOutline
	ExplorerSwitchPaneNext
	ExplorerSwitchPanePrevious
	ExplorerScrollUp
	ExplorerScrollDown
)

type ExplorerMsg struct {
	Action ExplorerAction
	Amount Scroll
}

type OutlineAction int

const (
	OutlineUp OutlineAction = iota
	OutlineDown
	OutlineSelect
	OutlineExpand
	OutlineToggle
	OutlineToggleExplorer
	OutlineSelectAt
	OutlineSwitchPaneNext
	OutlineSwitchPanePrevious
)

type OutlineMsg struct {
	Action OutlineAction
	Row    int // block index, for OutlineSelectAt
}

type NoteEditorAction int

const (
	NoteEditorSave NoteEditorAction = iota
	NoteEditorSwitchPaneNext
	NoteEditorSwitchPanePrevious
	NoteEditorToggleExplorer
	NoteEditorToggleOutline
	NoteEditorEditMode
	NoteEditorExitMode
	NoteEditorReadMode
	NoteEditorKey
	NoteEditorCursorUp
	NoteEditorCursorDown
	NoteEditorCursorLeft
	NoteEditorCursorRight
	NoteEditorCursorWordForward
	NoteEditorCursorWordBackward
	NoteEditorScrollUp
	NoteEditorScrollDown
	NoteEditorSetRow
	NoteEditorDelete
)

type NoteEditorMsg struct {
	Action NoteEditorAction
	Amount Scroll
	Row    int        // block index, for NoteEditorSetRow
	Key    tea.KeyMsg // for NoteEditorKey
}

type HelpModalAction int

const (
	HelpModalToggle HelpModalAction = iota
	HelpModalClose
	HelpModalScrollUp
	HelpModalScrollDown
)

type HelpModalMsg struct {
	Action HelpModalAction
	Amount Scroll
}

type VaultSelectorAction int

const (
	VaultSelectorToggle VaultSelectorAction = iota
	VaultSelectorUp
	VaultSelectorDown
	VaultSelectorSelect
	VaultSelectorClose
)

type VaultSelectorMsg struct {
	Action VaultSelectorAction
}
