package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/scoria/internal/keymap"
	"github.com/pfassina/scoria/internal/theme"
)

// HelpMarkdown lists the bindings of every scope as markdown tables.
func HelpMarkdown(table *keymap.Table, version string) string {
	var b strings.Builder
	b.WriteString("# Key bindings\n\n")
	b.WriteString("Bindings are read from `config.toml`; global bindings win outside edit mode.\n\n")

	for _, scope := range keymap.Scopes {
		bindings := table.KeyBindings(scope)
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", scope)
		b.WriteString("| key | command |\n|---|---|\n")
		for _, binding := range bindings {
			h := binding.Help()
			key := h.Key
			if key == "|" {
				key = `\|`
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", key, strings.ReplaceAll(h.Desc, "|", `\|`))
		}
		b.WriteByte('\n')
	}

	if version != "" {
		fmt.Fprintf(&b, "---\n\nscoria %s\n", version)
	}
	return b.String()
}

// Help is the scrollable key binding modal.
type Help struct {
	viewport viewport.Model
	source   string
	visible  bool
	width    int
	height   int
	theme    *theme.Theme
}

func NewHelp(table *keymap.Table, version string, th *theme.Theme) Help {
	return Help{
		viewport: viewport.New(0, 0),
		source:   HelpMarkdown(table, version),
		theme:    th,
	}
}

func (h *Help) Toggle() {
	h.visible = !h.visible
	if h.visible {
		h.viewport.GotoTop()
	}
}

func (h *Help) Close() { h.visible = false }

func (h Help) Visible() bool { return h.visible }

// Height is the number of text lines the modal shows at once.
func (h Help) Height() int { return h.viewport.Height }

func (h *Help) ScrollUp(n int) { h.viewport.ScrollUp(n) }

func (h *Help) ScrollDown(n int) { h.viewport.ScrollDown(n) }

// SetSize sizes the modal for a screen of width x height and re-renders the
// text for the new width.
func (h *Help) SetSize(width, height int) {
	w := width * 2 / 3
	if w < 40 {
		w = min(width, 40)
	}
	ht := height * 2 / 3
	if ht < 10 {
		ht = min(height, 10)
	}
	if w == h.width && ht == h.height {
		return
	}
	h.width, h.height = w, ht

	// border + padding + title
	h.viewport.Width = max(w-4, 1)
	h.viewport.Height = max(ht-4, 1)

	rendered := h.source
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(h.viewport.Width))
	if err == nil {
		if out, err := r.Render(h.source); err == nil {
			rendered = out
		}
	}
	h.viewport.SetContent(rendered)
}

func (h Help) View() string {
	if !h.visible || h.width == 0 {
		return ""
	}
	th := h.theme

	title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render("Help")
	pct := fmt.Sprintf("%3.f%%", h.viewport.ScrollPercent()*100)
	hint := lipgloss.NewStyle().Foreground(th.Dim).Render(pct)
	gap := h.viewport.Width - lipgloss.Width(title) - lipgloss.Width(hint)
	header := title
	if gap > 0 {
		header += strings.Repeat(" ", gap) + hint
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(h.width - 2).
		Render(header + "\n" + h.viewport.View())
}
