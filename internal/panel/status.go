package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/scoria/internal/theme"
)

// NoteInfo is what the status bar shows about the open note.
type NoteInfo struct {
	Title    string
	Modified bool
	Words    int
	Chars    int
	Minutes  int // estimated reading time
}

// Status is the status bar at the bottom.
type Status struct {
	width  int
	pane   string
	mode   string
	vault  string
	note   *NoteInfo
	errMsg string
	theme  *theme.Theme
}

func NewStatus(th *theme.Theme) Status {
	return Status{
		mode:  "READ",
		theme: th,
	}
}

func (s *Status) SetPane(pane string) {
	s.pane = pane
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

func (s *Status) SetVault(name string) {
	s.vault = name
}

// SetNote shows info about the open note. nil clears it.
func (s *Status) SetNote(info *NoteInfo) {
	s.note = info
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) Error() string { return s.errMsg }

func (s Status) modeColor() lipgloss.Color {
	switch s.mode {
	case "VIEW":
		return s.theme.ViewMode
	case "EDIT":
		return s.theme.EditMode
	}
	return s.theme.ReadMode
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}
	th := s.theme

	bgStyle := lipgloss.NewStyle().Background(th.StatusBg)
	sectionStyle := lipgloss.NewStyle().
		Background(th.StatusBg).
		Foreground(th.StatusFg).
		Padding(0, 1)
	modeStyle := lipgloss.NewStyle().
		Background(s.modeColor()).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1)

	left := modeStyle.Render(s.mode)
	if s.pane != "" {
		left += sectionStyle.Foreground(th.Dim).Render(s.pane)
	}

	switch {
	case s.errMsg != "":
		left += sectionStyle.Foreground(th.Error).Render(s.errMsg)
	case s.note != nil:
		title := s.note.Title
		if s.note.Modified {
			title += " [+]"
		}
		left += sectionStyle.Render(title)
	default:
		left += sectionStyle.Render(s.vault)
	}

	right := ""
	if s.note != nil {
		right = sectionStyle.Foreground(th.Dim).Render(
			fmt.Sprintf("%d words · %d chars · %d min", s.note.Words, s.note.Chars, s.note.Minutes))
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
