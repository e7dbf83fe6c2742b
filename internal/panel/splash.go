package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/scoria/internal/theme"
	"github.com/pfassina/scoria/internal/vault"
)

const logo = `
 ___  ___ ___  _ __(_) __ _
/ __|/ __/ _ \| '__| |/ _' |
\__ \ (_| (_) | |  | | (_| |
|___/\___\___/|_|  |_|\__,_|`

// Splash is the start screen listing the known vaults.
type Splash struct {
	list    vaultList
	version string
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

// NewSplash returns a visible splash with the cursor on last, the path of
// the vault opened in the previous session.
func NewSplash(vaults []vault.Vault, last, version string, th *theme.Theme) Splash {
	s := Splash{
		list:    vaultList{vaults: vaults},
		version: version,
		visible: true,
		theme:   th,
	}
	s.list.focus(last)
	return s
}

func (s *Splash) Hide() { s.visible = false }

func (s Splash) Visible() bool { return s.visible }

func (s *Splash) Up() { s.list.up() }

func (s *Splash) Down() { s.list.down() }

func (s Splash) Selected() (vault.Vault, bool) { return s.list.selected() }

func (s *Splash) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s Splash) View() string {
	if s.width == 0 || s.height == 0 {
		return ""
	}
	th := s.theme

	logoStyle := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(th.Dim)

	var parts []string
	parts = append(parts, logoStyle.Render(strings.TrimPrefix(logo, "\n")))
	if s.version != "" {
		parts = append(parts, dim.Render(s.version))
	}
	parts = append(parts, "")

	listWidth := min(s.width-4, 60)
	list := lipgloss.NewStyle().Width(listWidth).Render(
		strings.Join(s.list.lines(th, listWidth, s.height/2), "\n"))
	parts = append(parts, list, "", dim.Render("enter open · j/k move · q quit"))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, body)
}
