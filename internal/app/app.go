package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/scoria/internal/config"
	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/keymap"
	"github.com/pfassina/scoria/internal/logging"
	"github.com/pfassina/scoria/internal/markdown"
	"github.com/pfassina/scoria/internal/panel"
	"github.com/pfassina/scoria/internal/session"
	"github.com/pfassina/scoria/internal/theme"
	"github.com/pfassina/scoria/internal/vault"
)

// Options configure a new App.
type Options struct {
	Config  config.Config
	Vaults  []vault.Vault
	Logger  *log.Logger
	Store   *session.Store // nil disables session persistence
	Version string

	// Vault, when set, is opened right away instead of showing the splash.
	Vault *vault.Vault
}

type App struct {
	cfg     config.Config
	keys    *keymap.Table
	theme   *theme.Theme
	logger  *log.Logger
	store   *session.Store
	session session.State
	program *tea.Program
	watcher *vault.Watcher
	initCmd tea.Cmd

	vaults []vault.Vault
	vault  vault.Vault

	splash   panel.Splash
	explorer panel.Explorer
	outline  panel.Outline
	editor   panel.Editor
	help     panel.Help
	selector panel.VaultSelector
	status   panel.Status

	active Pane

	// selected note and the snapshot of its content
	selected *vault.Note
	content  string
	doc      *document.Document
	revision int

	width  int
	height int
}

func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg.Keys == nil {
		cfg.Keys = keymap.Defaults()
	}

	th, err := theme.WithOverrides(theme.Get(cfg.Theme), cfg.Colors)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	state := session.Default()
	if opts.Store != nil {
		if state, err = opts.Store.Load(); err != nil {
			logger.Warn("load session", "path", opts.Store.Path(), "err", err)
		}
	}

	a := &App{
		cfg:     cfg,
		keys:    cfg.Keys,
		theme:   &th,
		logger:  logger,
		store:   opts.Store,
		session: state,
		vaults:  opts.Vaults,
		active:  PaneExplorer,
	}
	a.splash = panel.NewSplash(opts.Vaults, state.LastVault, opts.Version, a.theme)
	a.explorer = panel.NewExplorer(a.theme)
	a.explorer.SetOpen(state.ShowExplorer)
	a.outline = panel.NewOutline(a.theme)
	a.outline.SetOpen(state.ShowOutline)
	a.editor = panel.NewEditor(a.theme)
	a.help = panel.NewHelp(a.keys, opts.Version, a.theme)
	a.selector = panel.NewVaultSelector(opts.Vaults, a.theme)
	a.status = panel.NewStatus(a.theme)

	if opts.Vault != nil {
		a.initCmd = a.dispatch(OpenVaultMsg{Vault: *opts.Vault})
	}
	a.refreshStatus()
	return a, nil
}

// SetProgram lets background work post messages into the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	if a.vault.Path != "" {
		a.watch(a.vault)
	}
}

func (a *App) Init() tea.Cmd {
	return a.initCmd
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.dispatch(ResizeMsg{Width: msg.Width, Height: msg.Height})
	case tea.KeyMsg:
		a.status.ClearError()
		next := a.keyMessage(msg)
		if next == nil {
			a.refreshStatus()
			return a, nil
		}
		return a, a.dispatch(next)
	}
	return a, a.dispatch(msg)
}

// watch follows v on disk when vault watching is enabled.
func (a *App) watch(v vault.Vault) {
	if !a.cfg.WatchVault || a.program == nil {
		return
	}
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("stop watcher", "err", err)
		}
		a.watcher = nil
	}

	p := a.program
	w, err := vault.NewWatcher(v, a.logger, func() { p.Send(VaultChangedMsg{}) })
	if err != nil {
		a.logger.Warn("watch vault", "path", v.Path, "err", err)
		return
	}
	go w.Start()
	a.watcher = w
}

func (a *App) minWindowSize() (minW, minH int) {
	return 40, 10
}

func (a *App) updateLayout() {
	l := ComputeLayout(a.width, a.height, a.explorer.IsOpen(), a.outline.IsOpen(), a.cfg.ExplorerWidth, a.cfg.OutlineWidth)

	a.explorer.SetSize(max(l.ExplorerWidth-1, 0), l.Height)
	a.outline.SetSize(max(l.OutlineWidth-1, 0), l.Height)
	a.editor.SetSize(l.EditorWidth, l.Height)
	a.editor.Sync(false)
	a.status.SetWidth(a.width)
	a.splash.SetSize(a.width, l.Height)
	a.help.SetSize(a.width, a.height)
	a.selector.SetSize(a.width, a.height)
}

// noteTitle is the front matter title of the selected note, or its name.
func (a *App) noteTitle() string {
	if fm := markdown.ExtractFrontmatter([]byte(a.content)); fm != nil && fm.Title != "" {
		return fm.Title
	}
	return a.selected.Name
}

func (a *App) refreshStatus() {
	a.status.SetPane(a.ActiveComponent().String())
	if a.doc == nil {
		a.status.SetMode(document.Read.String())
		a.status.SetNote(nil)
		return
	}
	a.status.SetMode(a.doc.Mode().String())
	a.status.SetNote(&panel.NoteInfo{
		Title:    a.noteTitle(),
		Modified: a.doc.Modified() || a.doc.Dirty(),
		Words:    markdown.WordCount(a.content),
		Chars:    markdown.CharCount(a.content),
		Minutes:  markdown.ReadingMinutes(a.content),
	})
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	minW, minH := a.minWindowSize()
	if a.width < minW || a.height < minH {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: %dx%d", a.width, a.height, minW, minH)
		style := lipgloss.NewStyle().
			Foreground(a.theme.Text).
			Padding(1, 2)
		box := style.Render(msg)
		base := strings.Repeat("\n", max(a.height, 1))
		return overlayCenter(base, box, a.width, a.height)
	}

	l := ComputeLayout(a.width, a.height, a.explorer.IsOpen(), a.outline.IsOpen(), a.cfg.ExplorerWidth, a.cfg.OutlineWidth)

	var main string
	if a.splash.Visible() {
		main = lipgloss.NewStyle().
			Width(a.width).
			Height(l.Height).
			Render(a.splash.View())
	} else {
		var columns []string

		if a.explorer.IsOpen() {
			borderStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), false, true, false, false).
				BorderForeground(a.theme.Border).
				Width(max(l.ExplorerWidth-1, 0)).
				Height(l.Height)
			columns = append(columns, borderStyle.Render(a.explorer.View()))
		}

		editorStyle := lipgloss.NewStyle().
			Width(l.EditorWidth).
			Height(l.Height).
			MaxHeight(l.Height)
		columns = append(columns, editorStyle.Render(a.editor.View()))

		if a.outline.IsOpen() {
			borderStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), false, false, false, true).
				BorderForeground(a.theme.Border).
				Width(max(l.OutlineWidth-1, 0)).
				Height(l.Height)
			columns = append(columns, borderStyle.Render(a.outline.View()))
		}

		main = lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	}

	result := main + "\n" + a.status.View()

	if a.selector.Visible() {
		result = overlayCenter(result, a.selector.View(), a.width, a.height)
	}
	if a.help.Visible() {
		result = overlayCenter(result, a.help.View(), a.width, a.height)
	}

	return result
}

// Close saves the session and stops the vault watcher.
func (a *App) Close() {
	if a.doc != nil && (a.doc.Modified() || a.doc.Dirty()) {
		a.logger.Warn("quit with unsaved changes", "path", a.doc.Path())
	}
	a.saveSession()
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("stop watcher", "err", err)
		}
		a.watcher = nil
	}
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		w := lipgloss.Width(line)
		if w > overlayWidth {
			overlayWidth = w
		}
	}

	startRow := max((height-len(overlayLines))/2, 0)
	startCol := max((width-overlayWidth)/2, 0)

	padToCol := func(s string, col int) string {
		// Pad with spaces based on *visible* width (handles ANSI strings safely).
		if w := lipgloss.Width(s); w < col {
			s += strings.Repeat(" ", col-w)
		}
		return s
	}

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		baseLine := padToCol(baseLines[row], startCol)

		// Keep the left part of the base line, replace the middle with the
		// overlay and keep the right tail, cutting by cells so ANSI sequences
		// survive.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)

		baseLines[row] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}
