package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/scoria/internal/config"
	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/session"
	"github.com/pfassina/scoria/internal/vault"
)

type testApp struct {
	*App
	t    *testing.T
	root string
}

func newTestApp(t *testing.T, experimental bool, files map[string]string) *testApp {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfg := config.Default()
	cfg.ExperimentalEditor = experimental
	a, err := New(Options{
		Config: cfg,
		Vaults: []vault.Vault{vault.New("test", root)},
	})
	require.NoError(t, err)
	a.dispatch(ResizeMsg{Width: 120, Height: 40})
	return &testApp{App: a, t: t, root: root}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys through the program's Update.
func (ta *testApp) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = ta.Update(k)
	}
	return cmd
}

func (ta *testApp) typeText(s string) {
	for _, r := range s {
		ta.press(runes(string(r)))
	}
}

// openNote opens the vault from the splash, opens the first explorer entry
// and focuses the editor.
func (ta *testApp) openNote() {
	ta.t.Helper()
	ta.press(tea.KeyMsg{Type: tea.KeyEnter}) // splash: open vault
	require.Equal(ta.t, PaneExplorer, ta.ActiveComponent())
	ta.press(tea.KeyMsg{Type: tea.KeyEnter}) // explorer: open note
	require.NotNil(ta.t, ta.doc)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(ta.t, PaneNoteEditor, ta.ActiveComponent())
}

func TestActiveComponentPrecedence(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "# A"})
	assert.Equal(t, PaneSplash, ta.ActiveComponent())

	ta.dispatch(VaultSelectorMsg{Action: VaultSelectorToggle})
	assert.Equal(t, PaneVaultSelectorModal, ta.ActiveComponent())

	ta.dispatch(HelpModalMsg{Action: HelpModalToggle})
	assert.Equal(t, PaneHelpModal, ta.ActiveComponent())

	ta.dispatch(HelpModalMsg{Action: HelpModalClose})
	assert.Equal(t, PaneVaultSelectorModal, ta.ActiveComponent())

	ta.dispatch(VaultSelectorMsg{Action: VaultSelectorClose})
	assert.Equal(t, PaneSplash, ta.ActiveComponent())
}

func TestGlobalKeysToggleModals(t *testing.T) {
	ta := newTestApp(t, false, nil)

	ta.press(runes("?"))
	assert.True(t, ta.help.Visible())
	ta.press(runes("?"))
	assert.False(t, ta.help.Visible())

	ta.press(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, ta.selector.Visible())
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ta.selector.Visible())
}

func TestQuit(t *testing.T) {
	ta := newTestApp(t, false, nil)
	cmd := ta.press(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestOpenVaultFromSplash(t *testing.T) {
	store := session.NewStore(t.TempDir())
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0644))

	a, err := New(Options{
		Config: config.Default(),
		Vaults: []vault.Vault{vault.New("notes", root)},
		Store:  store,
	})
	require.NoError(t, err)
	a.dispatch(ResizeMsg{Width: 100, Height: 30})

	a.dispatch(SplashMsg{Action: SplashOpen})

	assert.False(t, a.splash.Visible())
	assert.Equal(t, PaneExplorer, a.ActiveComponent())
	assert.Len(t, a.explorer.Entries(), 1)
	assert.Nil(t, a.doc)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, root, state.LastVault)
}

func TestOpenVaultOption(t *testing.T) {
	root := t.TempDir()
	v := vault.New("direct", root)
	a, err := New(Options{Config: config.Default(), Vault: &v})
	require.NoError(t, err)

	assert.False(t, a.splash.Visible())
	assert.Equal(t, PaneExplorer, a.ActiveComponent())
	assert.Equal(t, root, a.vault.Path)
}

func waitReturn(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not return", what)
	}
}

func TestWatchedVaultDoesNotBlock(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.WatchVault = true
	a, err := New(Options{Config: cfg, Vaults: []vault.Vault{vault.New("w", root)}})
	require.NoError(t, err)
	a.SetProgram(tea.NewProgram(nil))
	defer a.Close()

	waitReturn(t, "opening a watched vault", func() {
		a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	})
	assert.Equal(t, PaneExplorer, a.ActiveComponent())
	assert.NotNil(t, a.watcher)
}

func TestWatchedVaultOptionDoesNotBlock(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.WatchVault = true
	v := vault.New("w", root)
	a, err := New(Options{Config: cfg, Vault: &v})
	require.NoError(t, err)
	defer a.Close()

	waitReturn(t, "SetProgram", func() {
		a.SetProgram(tea.NewProgram(nil))
	})
	assert.NotNil(t, a.watcher)
}

func TestPaneCycling(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "# A"})
	ta.dispatch(SplashMsg{Action: SplashOpen})
	require.False(t, ta.outline.IsOpen())

	ta.dispatch(ExplorerMsg{Action: ExplorerSwitchPaneNext})
	assert.Equal(t, PaneNoteEditor, ta.ActiveComponent())

	// The closed outline is skipped.
	ta.dispatch(NoteEditorMsg{Action: NoteEditorSwitchPaneNext})
	assert.Equal(t, PaneExplorer, ta.ActiveComponent())

	ta.dispatch(ExplorerMsg{Action: ExplorerToggleOutline})
	require.True(t, ta.outline.IsOpen())

	ta.dispatch(ExplorerMsg{Action: ExplorerSwitchPanePrevious})
	assert.Equal(t, PaneOutline, ta.ActiveComponent())
	ta.dispatch(OutlineMsg{Action: OutlineSwitchPaneNext})
	assert.Equal(t, PaneExplorer, ta.ActiveComponent())
	ta.dispatch(ExplorerMsg{Action: ExplorerSwitchPaneNext})
	ta.dispatch(NoteEditorMsg{Action: NoteEditorSwitchPaneNext})
	assert.Equal(t, PaneOutline, ta.ActiveComponent())
	ta.dispatch(OutlineMsg{Action: OutlineSwitchPanePrevious})
	assert.Equal(t, PaneNoteEditor, ta.ActiveComponent())
}

func TestClosingFocusedPaneFocusesEditor(t *testing.T) {
	ta := newTestApp(t, false, nil)
	ta.dispatch(SplashMsg{Action: SplashOpen})
	require.Equal(t, PaneExplorer, ta.ActiveComponent())

	ta.dispatch(ExplorerMsg{Action: ExplorerToggle})
	assert.False(t, ta.explorer.IsOpen())
	assert.Equal(t, PaneNoteEditor, ta.ActiveComponent())

	ta.dispatch(NoteEditorMsg{Action: NoteEditorToggleOutline})
	ta.dispatch(SetActivePaneMsg{Pane: PaneOutline})
	ta.dispatch(OutlineMsg{Action: OutlineToggle})
	assert.Equal(t, PaneNoteEditor, ta.ActiveComponent())
}

func TestReopeningPaneFocusesIt(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "# A"})
	ta.dispatch(SplashMsg{Action: SplashOpen})

	ta.dispatch(ExplorerMsg{Action: ExplorerToggle})
	require.Equal(t, PaneNoteEditor, ta.ActiveComponent())
	ta.dispatch(NoteEditorMsg{Action: NoteEditorToggleExplorer})
	assert.True(t, ta.explorer.IsOpen())
	assert.Equal(t, PaneExplorer, ta.ActiveComponent())

	ta.dispatch(ExplorerMsg{Action: ExplorerToggleOutline})
	assert.True(t, ta.outline.IsOpen())
	assert.Equal(t, PaneOutline, ta.ActiveComponent())

	// Closing an unfocused pane leaves focus alone.
	ta.dispatch(OutlineMsg{Action: OutlineToggleExplorer})
	assert.False(t, ta.explorer.IsOpen())
	assert.Equal(t, PaneOutline, ta.ActiveComponent())
}

func TestEditBlockThroughKeys(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "# A\n\nbody"})
	ta.openNote()
	assert.Equal(t, document.Read, ta.doc.Mode())

	ta.press(tea.KeyMsg{Type: tea.KeyEsc}) // Read -> View
	require.Equal(t, document.View, ta.doc.Mode())
	ta.press(runes("j"))
	require.Equal(t, 1, ta.doc.Row())

	ta.press(runes("i"))
	require.Equal(t, document.Edit, ta.doc.Mode())
	ta.typeText("new")
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, document.View, ta.doc.Mode())
	assert.Equal(t, "# A\n\nnewbody", ta.doc.Content())
	assert.Equal(t, "# A\n\nnewbody", ta.content)
	assert.True(t, ta.doc.Modified())

	ta.press(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, ta.doc.Modified())
	data, err := os.ReadFile(filepath.Join(ta.root, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "# A\n\nnewbody", string(data))
}

func TestEditModeOwnsGlobalKeys(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "text"})
	ta.openNote()
	ta.press(tea.KeyMsg{Type: tea.KeyEsc}, runes("i"))
	require.Equal(t, document.Edit, ta.doc.Mode())

	cmd := ta.press(runes("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, "qtext", ta.doc.Buffer().String())

	ta.press(runes("?"))
	assert.False(t, ta.help.Visible())
}

func TestExperimentalCommandsDisabled(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "# A\n\nbody"})
	ta.openNote()

	ta.press(tea.KeyMsg{Type: tea.KeyEsc}, runes("i"))
	assert.Equal(t, document.Read, ta.doc.Mode())
}

func TestHeadingEditRebuildsOutline(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "# A\n\ntext"})
	ta.openNote()
	require.Equal(t, "A", ta.outline.Tree().Entries()[0].Text)

	ta.press(tea.KeyMsg{Type: tea.KeyEsc}, runes("i"))
	ta.press(tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyBackspace})
	ta.typeText("B")
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "# B\n\ntext", ta.doc.Content())
	entries := ta.outline.Tree().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].Text)
	assert.Equal(t, 0, ta.outline.Tree().Index())
}

func TestCursorMoveSelectsOutlineEntry(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "# A\n\none\n\n## B\n\ntwo"})
	ta.openNote()
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})

	ta.press(runes("j"), runes("j"), runes("j"))
	require.Equal(t, 3, ta.doc.Row())
	e, ok := ta.outline.Tree().Selected()
	require.True(t, ok)
	assert.Equal(t, "B", e.Text)

	// Past the last block the row stays put.
	ta.press(runes("j"))
	assert.Equal(t, 3, ta.doc.Row())
}

func TestOutlineSelectSetsRow(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "# A\n\none\n\n## B\n\ntwo"})
	ta.openNote()
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})

	ta.dispatch(OutlineMsg{Action: OutlineDown})
	ta.dispatch(OutlineMsg{Action: OutlineSelect})
	assert.Equal(t, 2, ta.doc.Row())
}

func TestFailedSaveReportsStatus(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"a.md": "body"})
	ta.openNote()
	ta.press(tea.KeyMsg{Type: tea.KeyEsc}, runes("i"))
	ta.typeText("x")
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ta.doc.Modified())

	require.NoError(t, os.RemoveAll(ta.root))
	ta.press(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.True(t, ta.doc.Modified())
	assert.Contains(t, ta.status.Error(), "save")

	// The error stays until the next key press.
	ta.press(runes("j"))
	assert.Empty(t, ta.status.Error())
}

func TestSelectMissingNoteReportsStatus(t *testing.T) {
	ta := newTestApp(t, false, nil)
	ta.dispatch(SplashMsg{Action: SplashOpen})

	ta.dispatch(SelectNoteMsg{Note: vault.NoteFromPath(filepath.Join(ta.root, "gone.md"))})
	require.NotNil(t, ta.doc)
	assert.Equal(t, "", ta.doc.Content())
	assert.NotEmpty(t, ta.status.Error())
}

func TestCommandExpandsTemplate(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "a"})
	ta.openNote()

	c, err := ta.command("open %note_path")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", filepath.Join(ta.root, "a.md")}, c.Args)
	assert.Equal(t, ta.root, c.Dir)

	c, err = ta.command("echo %note in %vault")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "a", "in", "test"}, c.Args)

	c, err = ta.command("open obsidian://open?vault=%vault&file=%note")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "obsidian://open?vault=test&file=a"}, c.Args)

	_, err = ta.command("  ")
	assert.ErrorIs(t, err, errEmptyCommand)
}

func TestExecFinished(t *testing.T) {
	ta := newTestApp(t, false, map[string]string{"a.md": "before"})
	ta.openNote()

	ta.dispatch(execFinishedMsg{name: "vim", err: errors.New("exit status 1")})
	assert.Equal(t, "exec vim: exit status 1", ta.status.Error())

	require.NoError(t, os.WriteFile(filepath.Join(ta.root, "a.md"), []byte("after"), 0644))
	ta.dispatch(execFinishedMsg{name: "vim"})
	assert.Equal(t, "after", ta.doc.Content())
	assert.Equal(t, "after", ta.content)
}

func TestEmptyExecTemplateReportsStatus(t *testing.T) {
	ta := newTestApp(t, false, nil)
	cmd := ta.dispatch(ExecMsg{Template: " "})
	assert.Nil(t, cmd)
	assert.Contains(t, ta.status.Error(), "empty command")
}

func TestViewRenders(t *testing.T) {
	ta := newTestApp(t, true, map[string]string{"ideas.md": "---\ntitle: Big Ideas\n---\n# Ideas\n\nsome words here"})
	assert.Contains(t, ta.View(), "test")

	ta.openNote()
	ta.dispatch(ExplorerMsg{Action: ExplorerToggleOutline})
	view := ta.View()
	assert.Contains(t, view, "Outline")
	assert.Contains(t, view, "Big Ideas")
	assert.Contains(t, view, "words")
	assert.Contains(t, view, "1 min")

	ta.dispatch(HelpModalMsg{Action: HelpModalToggle})
	assert.Contains(t, ta.View(), "Help")
}

func TestWindowTooSmall(t *testing.T) {
	ta := newTestApp(t, false, nil)
	ta.dispatch(ResizeMsg{Width: 20, Height: 5})
	assert.True(t, strings.Contains(ta.View(), "Window too small"))
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name                  string
		width                 int
		explorer, outline     bool
		wantExplorer, wantOut int
	}{
		{"editor only", 120, false, false, 0, 0},
		{"explorer", 120, true, false, 32, 0},
		{"both", 120, true, true, 32, 29},
		{"narrow", 60, true, true, 20, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.width, 40, tt.explorer, tt.outline, 32, 30)
			assert.Equal(t, tt.wantExplorer, l.ExplorerWidth)
			assert.Equal(t, tt.wantOut, l.OutlineWidth)
			assert.Equal(t, tt.width, l.ExplorerWidth+l.EditorWidth+l.OutlineWidth)
			assert.Equal(t, 39, l.Height)
		})
	}
}

func TestOverlayCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := overlayCenter(base, "ab\ncd", 10, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "....ab....", lines[1])
	assert.Equal(t, "....cd....", lines[2])
	assert.Equal(t, "..........", lines[0])
}
