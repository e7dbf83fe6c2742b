package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/scoria/internal/theme"
	"github.com/pfassina/scoria/internal/vault"
)

// vaultList is the cursor over the known vaults shared by the splash screen
// and the vault selector modal.
type vaultList struct {
	vaults []vault.Vault
	cursor int
}

func (l *vaultList) up() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *vaultList) down() {
	if l.cursor < len(l.vaults)-1 {
		l.cursor++
	}
}

func (l vaultList) selected() (vault.Vault, bool) {
	if l.cursor < 0 || l.cursor >= len(l.vaults) {
		return vault.Vault{}, false
	}
	return l.vaults[l.cursor], true
}

// focus moves the cursor to the vault at path, if listed.
func (l *vaultList) focus(path string) {
	for i, v := range l.vaults {
		if v.Path == path {
			l.cursor = i
			return
		}
	}
}

func (l vaultList) lines(th *theme.Theme, width, limit int) []string {
	if len(l.vaults) == 0 {
		return []string{lipgloss.NewStyle().Foreground(th.Dim).Render("No vaults")}
	}

	start := 0
	if limit > 0 && l.cursor >= limit {
		start = l.cursor - limit + 1
	}

	var lines []string
	for i := start; i < len(l.vaults) && (limit <= 0 || i-start < limit); i++ {
		v := l.vaults[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(th.Text)
		if i == l.cursor {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		}
		line := prefix + v.Name
		dim := lipgloss.NewStyle().Foreground(th.Dim)
		line = style.Render(line) + " " + dim.Render(v.Path)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}

	if limit > 0 && len(l.vaults) > start+limit {
		dim := lipgloss.NewStyle().Foreground(th.Dim)
		lines = append(lines, dim.Render(fmt.Sprintf("  ... and %d more", len(l.vaults)-start-limit)))
	}
	return lines
}

// VaultSelector is the modal for switching vaults.
type VaultSelector struct {
	list    vaultList
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewVaultSelector(vaults []vault.Vault, th *theme.Theme) VaultSelector {
	return VaultSelector{
		list:  vaultList{vaults: vaults},
		theme: th,
	}
}

// Toggle shows or hides the modal, putting the cursor on the current vault
// when showing it.
func (s *VaultSelector) Toggle(current string) {
	s.visible = !s.visible
	if s.visible {
		s.list.focus(current)
	}
}

func (s *VaultSelector) Close() { s.visible = false }

func (s VaultSelector) Visible() bool { return s.visible }

func (s *VaultSelector) Up() { s.list.up() }

func (s *VaultSelector) Down() { s.list.down() }

func (s VaultSelector) Selected() (vault.Vault, bool) { return s.list.selected() }

func (s *VaultSelector) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s VaultSelector) View() string {
	if !s.visible {
		return ""
	}
	th := s.theme

	width := s.width / 2
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	title := lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render("Open Vault")

	maxResults := s.height/2 - 4
	if maxResults < 5 {
		maxResults = 5
	}

	lines := []string{title, ""}
	lines = append(lines, s.list.lines(th, innerWidth, maxResults)...)
	return borderStyle.Render(strings.Join(lines, "\n"))
}
