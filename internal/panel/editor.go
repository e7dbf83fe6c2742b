package panel

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/markdown"
	"github.com/pfassina/scoria/internal/theme"
)

// Editor shows the open note. Read mode renders the whole note; View and
// Edit render block by block with the current block shown as source.
type Editor struct {
	doc      *document.Document
	name     string
	width    int
	height   int
	active   bool
	theme    *theme.Theme
	renderer *glamour.TermRenderer
	cache    map[string][]string
}

func NewEditor(th *theme.Theme) Editor {
	return Editor{
		theme: th,
		cache: make(map[string][]string),
	}
}

// SetDocument shows doc under the given title. nil clears the editor.
func (e *Editor) SetDocument(doc *document.Document, name string) {
	e.doc = doc
	e.name = name
}

func (e Editor) Document() *document.Document { return e.doc }

func (e Editor) Name() string { return e.name }

func (e Editor) IsActive() bool { return e.active }

func (e *Editor) SetActive(active bool) { e.active = active }

// Height is the number of note lines on screen.
func (e Editor) Height() int { return max(e.height-1, 1) }

func (e *Editor) SetSize(width, height int) {
	if width != e.width {
		e.renderer = nil
		e.cache = make(map[string][]string)
	}
	e.width = width
	e.height = height
	if e.renderer == nil && width > 4 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(e.textWidth()),
		)
		if err == nil {
			e.renderer = r
		}
	}
}

// textWidth leaves room for the two-column gutter.
func (e Editor) textWidth() int { return max(e.width-2, 1) }

// Sync clamps the document's scroll position to the rendered note. With
// follow set it also scrolls the cursor line into view.
func (e *Editor) Sync(follow bool) {
	if e.doc == nil {
		return
	}
	lines, cursor := e.lines()
	if follow && cursor >= 0 {
		h := e.Height()
		switch {
		case cursor < e.doc.Scroll():
			e.doc.ScrollBy(cursor - e.doc.Scroll())
		case cursor >= e.doc.Scroll()+h:
			e.doc.ScrollBy(cursor - h + 1 - e.doc.Scroll())
		}
	}
	e.doc.ClampScroll(len(lines) - e.Height())
}

// lines lays out the note and returns the line holding the cursor, or -1 in
// Read mode.
func (e Editor) lines() ([]string, int) {
	if e.doc.Mode() == document.Read {
		return e.readLines(), -1
	}

	bar := lipgloss.NewStyle().Foreground(e.modeColor()).Render("▎") + " "
	blank := "  "

	blocks := e.doc.Blocks()
	if len(blocks) == 0 {
		var out []string
		cur := e.currentLines()
		for _, l := range cur.lines {
			out = append(out, bar+l)
		}
		return out, cur.cursor
	}

	var out []string
	cursor := -1
	content := e.doc.Content()
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "")
		}
		if i == e.doc.Row() {
			cur := e.currentLines()
			cursor = len(out) + cur.cursor
			for _, l := range cur.lines {
				out = append(out, bar+l)
			}
			continue
		}
		for _, l := range e.renderBlock(b, content) {
			out = append(out, blank+l)
		}
	}
	return out, cursor
}

type sourceLines struct {
	lines  []string
	cursor int
}

// currentLines renders the block under the cursor as raw source. In Edit
// mode the cursor cell is drawn reversed.
func (e Editor) currentLines() sourceLines {
	th := e.theme
	buf := e.doc.Buffer()
	row, col := buf.Cursor()
	w := e.textWidth()

	text := lipgloss.NewStyle().Foreground(th.Text)
	lineStyle := lipgloss.NewStyle().Foreground(th.Text).Background(th.Selection)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	var out []string
	for i, line := range buf.Lines() {
		switch {
		case i == row && e.doc.Mode() == document.Edit:
			r := []rune(line)
			c := min(col, len(r))
			ch, rest := " ", ""
			if c < len(r) {
				ch, rest = string(r[c]), string(r[c+1:])
			}
			line = text.Render(string(r[:c])) + cursorStyle.Render(ch) + text.Render(rest)
		case i == row:
			line = lineStyle.Render(line)
		default:
			line = text.Render(line)
		}
		out = append(out, ansi.Truncate(line, w, "…"))
	}
	return sourceLines{lines: out, cursor: row}
}

func (e Editor) renderBlock(b markdown.Block, content string) []string {
	src := b.Source(content)
	if b.Kind == markdown.KindFrontmatter {
		dim := lipgloss.NewStyle().Foreground(e.theme.Dim)
		var out []string
		for _, l := range strings.Split(src, "\n") {
			out = append(out, ansi.Truncate(dim.Render(l), e.textWidth(), "…"))
		}
		return out
	}
	return e.render(src)
}

// render runs src through glamour, caching by width and source.
func (e Editor) render(src string) []string {
	key := strconv.Itoa(e.width) + "\x00" + src
	if lines, ok := e.cache[key]; ok {
		return lines
	}

	out := src
	if e.renderer != nil {
		if r, err := e.renderer.Render(src); err == nil {
			out = r
		}
	}
	lines := trimBlankLines(strings.Split(out, "\n"))
	if e.cache != nil {
		e.cache[key] = lines
	}
	return lines
}

func (e Editor) readLines() []string {
	content := e.doc.Content()
	if fm := markdown.ExtractFrontmatter([]byte(content)); fm != nil {
		content = content[fm.End:]
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return e.render(content)
}

func trimBlankLines(lines []string) []string {
	blank := func(s string) bool { return strings.TrimSpace(ansi.Strip(s)) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (e Editor) modeColor() lipgloss.Color {
	if e.doc != nil && e.doc.Mode() == document.Edit {
		return e.theme.EditMode
	}
	return e.theme.ViewMode
}

func (e Editor) title() string {
	th := e.theme
	name := e.name
	if name == "" {
		name = "scoria"
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(th.Dim).Padding(0, 1)
	if e.active {
		style = lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Underline(true).Padding(0, 1)
	}
	title := style.Render(name)
	if e.doc != nil && e.doc.Modified() {
		title += lipgloss.NewStyle().Foreground(th.Dim).Render("[+]")
	}
	return title
}

func (e Editor) View() string {
	if e.width == 0 || e.height == 0 {
		return ""
	}
	th := e.theme

	if e.doc == nil {
		dim := lipgloss.NewStyle().Foreground(th.Dim)
		return e.title() + "\n" + lipgloss.Place(e.width, e.Height(), lipgloss.Center, lipgloss.Center,
			dim.Render("No note selected"))
	}

	lines, _ := e.lines()
	vp := viewport.New(e.width, e.Height())
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(e.doc.Scroll())
	return e.title() + "\n" + vp.View()
}
