package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/scoria/internal/outline"
	"github.com/pfassina/scoria/internal/theme"
)

// Outline is the heading outline panel.
type Outline struct {
	tree   *outline.Outline
	width  int
	height int
	active bool
	open   bool
	theme  *theme.Theme
}

func NewOutline(th *theme.Theme) Outline {
	return Outline{
		tree:  outline.New(nil),
		theme: th,
	}
}

// SetTree replaces the heading tree. The open flag is kept.
func (o *Outline) SetTree(tree *outline.Outline) {
	if tree == nil {
		tree = outline.New(nil)
	}
	o.tree = tree
}

func (o Outline) Tree() *outline.Outline { return o.tree }

func (o Outline) Height() int { return o.height }

func (o Outline) IsOpen() bool { return o.open }

func (o *Outline) SetOpen(open bool) { o.open = open }

func (o Outline) IsActive() bool { return o.active }

func (o *Outline) SetActive(active bool) { o.active = active }

func (o *Outline) SetSize(width, height int) {
	o.width = width
	o.height = height
}

func (o Outline) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}
	th := o.theme

	var b strings.Builder
	b.WriteString(titleStyle(th, o.active).Render("Outline"))
	b.WriteByte('\n')

	viewHeight := o.height - 2
	if viewHeight < 1 {
		viewHeight = 1
	}

	entries := o.tree.Visible()
	if len(entries) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim).Padding(0, 1)
		b.WriteString(dim.Render("No headings"))
		b.WriteByte('\n')
		return b.String()
	}

	selected := o.tree.Index()
	offset := 0
	if selected >= viewHeight {
		offset = selected - viewHeight + 1
	}

	lineWidth := o.width - 2
	for i := offset; i < len(entries) && i-offset < viewHeight; i++ {
		e := entries[i]
		icon := "  "
		if len(e.Children) > 0 {
			if e.Expanded {
				icon = "▾ "
			} else {
				icon = "▸ "
			}
		}
		line := " " + strings.Repeat("  ", e.Depth()) + icon + e.Text
		line = ansi.Truncate(line, lineWidth, "…")

		style := lipgloss.NewStyle().Foreground(th.Text)
		if i == selected {
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
			if o.active {
				style = style.Background(th.Selection)
			}
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}

	return b.String()
}
