package panel

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/scoria/internal/theme"
	"github.com/pfassina/scoria/internal/vault"
)

// Explorer is the vault file tree panel.
type Explorer struct {
	vault      vault.Vault
	allEntries []vault.Entry
	entries    []vault.Entry
	collapsed  map[string]bool
	desc       bool
	current    string // path of the open note, relative to the vault
	cursor     int
	offset     int
	width      int
	height     int
	active     bool
	open       bool
	theme      *theme.Theme
}

func NewExplorer(th *theme.Theme) Explorer {
	return Explorer{
		collapsed: make(map[string]bool),
		open:      true,
		theme:     th,
	}
}

// Load switches the explorer to v, resetting cursor and collapse state.
func (e *Explorer) Load(v vault.Vault) error {
	e.vault = v
	e.collapsed = make(map[string]bool)
	e.current = ""
	e.cursor = 0
	e.offset = 0
	e.allEntries = nil
	e.entries = nil
	return e.Refresh()
}

// Refresh rereads the vault, keeping the cursor on the same path when it
// still exists.
func (e *Explorer) Refresh() error {
	var keep string
	if entry, ok := e.Selected(); ok {
		keep = entry.Path
	}

	entries, err := e.vault.Entries()
	if err != nil {
		return err
	}
	e.allEntries = arrange(entries, e.desc)
	e.rebuildVisible()

	if keep != "" {
		e.selectPath(keep)
	}
	return nil
}

// arrange orders entries depth-first, directories before notes at each
// level, names compared case-insensitively.
func arrange(entries []vault.Entry, desc bool) []vault.Entry {
	children := make(map[string][]vault.Entry)
	for _, entry := range entries {
		parent := filepath.Dir(entry.Path)
		children[parent] = append(children[parent], entry)
	}
	for _, list := range children {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].IsDir != list[j].IsDir {
				return list[i].IsDir
			}
			a, b := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
			if desc {
				return a > b
			}
			return a < b
		})
	}

	out := make([]vault.Entry, 0, len(entries))
	var walk func(dir string)
	walk = func(dir string) {
		for _, entry := range children[dir] {
			out = append(out, entry)
			if entry.IsDir {
				walk(entry.Path)
			}
		}
	}
	walk(".")
	return out
}

// rebuildVisible filters allEntries based on collapsed state.
func (e *Explorer) rebuildVisible() {
	e.entries = e.entries[:0]
	for _, entry := range e.allEntries {
		if e.isHiddenByCollapse(entry.Path) {
			continue
		}
		e.entries = append(e.entries, entry)
	}
	e.clampCursor()
}

// isHiddenByCollapse checks if any ancestor directory of path is collapsed.
func (e *Explorer) isHiddenByCollapse(path string) bool {
	dir := filepath.Dir(path)
	for dir != "." {
		if e.collapsed[dir] {
			return true
		}
		dir = filepath.Dir(dir)
	}
	return false
}

func (e *Explorer) selectPath(path string) {
	for i, entry := range e.entries {
		if entry.Path == path {
			e.cursor = i
			e.follow()
			return
		}
	}
}

func (e *Explorer) clampCursor() {
	if e.cursor >= len(e.entries) {
		e.cursor = len(e.entries) - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
	e.follow()
}

func (e *Explorer) listHeight() int {
	h := e.height - 2 // title + bottom padding
	if h < 1 {
		h = 1
	}
	return h
}

// follow keeps the cursor inside the visible window.
func (e *Explorer) follow() {
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor-e.offset >= e.listHeight() {
		e.offset = e.cursor - e.listHeight() + 1
	}
	if e.offset < 0 {
		e.offset = 0
	}
}

func (e *Explorer) Up() { e.Scroll(-1) }

func (e *Explorer) Down() { e.Scroll(1) }

// Scroll moves the cursor by delta entries.
func (e *Explorer) Scroll(delta int) {
	if len(e.entries) == 0 {
		return
	}
	e.cursor += delta
	e.clampCursor()
}

// Selected returns the entry under the cursor.
func (e Explorer) Selected() (vault.Entry, bool) {
	if e.cursor < 0 || e.cursor >= len(e.entries) {
		return vault.Entry{}, false
	}
	return e.entries[e.cursor], true
}

// ToggleDir expands or collapses a directory.
func (e *Explorer) ToggleDir(path string) {
	e.collapsed[path] = !e.collapsed[path]
	e.rebuildVisible()
}

// ToggleSort flips between ascending and descending name order.
func (e *Explorer) ToggleSort() {
	var keep string
	if entry, ok := e.Selected(); ok {
		keep = entry.Path
	}
	e.desc = !e.desc
	e.allEntries = arrange(e.allEntries, e.desc)
	e.rebuildVisible()
	if keep != "" {
		e.selectPath(keep)
	}
}

func (e Explorer) Descending() bool { return e.desc }

// SetCurrent marks the note shown in the editor.
func (e *Explorer) SetCurrent(path string) { e.current = path }

func (e Explorer) Vault() vault.Vault { return e.vault }

func (e Explorer) Entries() []vault.Entry { return e.entries }

func (e Explorer) Cursor() int { return e.cursor }

func (e Explorer) Height() int { return e.height }

func (e Explorer) IsOpen() bool { return e.open }

func (e *Explorer) SetOpen(open bool) { e.open = open }

func (e Explorer) IsActive() bool { return e.active }

func (e *Explorer) SetActive(active bool) { e.active = active }

func (e *Explorer) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.follow()
}

func (e Explorer) View() string {
	if e.width == 0 || e.height == 0 {
		return ""
	}
	th := e.theme

	var b strings.Builder

	order := "↑"
	if e.desc {
		order = "↓"
	}
	title := titleStyle(th, e.active).Render(e.vault.Name)
	hint := lipgloss.NewStyle().Foreground(th.Dim).Render(order)
	gap := e.width - 2 - lipgloss.Width(title) - lipgloss.Width(hint)
	b.WriteString(title)
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(hint)
	}
	b.WriteByte('\n')

	if len(e.entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1).Render("No notes"))
		b.WriteByte('\n')
		return b.String()
	}

	lineWidth := e.width - 2
	for i := e.offset; i < len(e.entries) && i-e.offset < e.listHeight(); i++ {
		entry := e.entries[i]
		indent := strings.Repeat("  ", entry.Depth)
		icon := "  "
		name := entry.Name
		if entry.IsDir {
			if e.collapsed[entry.Path] {
				icon = "▸ "
			} else {
				icon = "▾ "
			}
		} else {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		line := fmt.Sprintf("%s%s%s", indent, icon, name)
		line = ansi.Truncate(line, lineWidth, "…")
		if w := lipgloss.Width(line); w < lineWidth {
			line += strings.Repeat(" ", lineWidth-w)
		}

		style := lipgloss.NewStyle().Foreground(th.Text)
		switch {
		case i == e.cursor && e.active:
			style = lipgloss.NewStyle().Foreground(th.Accent).Background(th.Selection).Bold(true)
		case i == e.cursor:
			style = lipgloss.NewStyle().Foreground(th.Accent)
		case entry.Path == e.current:
			style = lipgloss.NewStyle().Foreground(th.Subtle).Bold(true)
		case entry.IsDir:
			style = lipgloss.NewStyle().Foreground(th.Subtle)
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	return b.String()
}

// titleStyle is shared by the side panels.
func titleStyle(th *theme.Theme, active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent).
			Underline(true).
			Padding(0, 1)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Dim).
		Padding(0, 1)
}
