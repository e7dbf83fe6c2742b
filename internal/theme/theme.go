package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color palette used by all TUI panels.
type Theme struct {
	Name      string
	Bg        lipgloss.Color
	Accent    lipgloss.Color
	Subtle    lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Border    lipgloss.Color
	StatusBg  lipgloss.Color
	StatusFg  lipgloss.Color
	Error     lipgloss.Color
	ReadMode  lipgloss.Color
	ViewMode  lipgloss.Color
	EditMode  lipgloss.Color
	Selection lipgloss.Color
}

var themes = map[string]Theme{
	"catppuccin": {
		Name:      "catppuccin",
		Bg:        lipgloss.Color("#1e1e2e"),
		Accent:    lipgloss.Color("#cba6f7"),
		Subtle:    lipgloss.Color("#6c7086"),
		Text:      lipgloss.Color("#cdd6f4"),
		Dim:       lipgloss.Color("#585b70"),
		Border:    lipgloss.Color("#45475a"),
		StatusBg:  lipgloss.Color("#313244"),
		StatusFg:  lipgloss.Color("#cdd6f4"),
		Error:     lipgloss.Color("#f38ba8"),
		ReadMode:  lipgloss.Color("#89b4fa"),
		ViewMode:  lipgloss.Color("#f9e2af"),
		EditMode:  lipgloss.Color("#a6e3a1"),
		Selection: lipgloss.Color("#45475a"),
	},
	"nord": {
		Name:      "nord",
		Bg:        lipgloss.Color("#2e3440"),
		Accent:    lipgloss.Color("#88c0d0"),
		Subtle:    lipgloss.Color("#4c566a"),
		Text:      lipgloss.Color("#eceff4"),
		Dim:       lipgloss.Color("#434c5e"),
		Border:    lipgloss.Color("#3b4252"),
		StatusBg:  lipgloss.Color("#3b4252"),
		StatusFg:  lipgloss.Color("#eceff4"),
		Error:     lipgloss.Color("#bf616a"),
		ReadMode:  lipgloss.Color("#81a1c1"),
		ViewMode:  lipgloss.Color("#ebcb8b"),
		EditMode:  lipgloss.Color("#a3be8c"),
		Selection: lipgloss.Color("#434c5e"),
	},
	"gruvbox": {
		Name:      "gruvbox",
		Bg:        lipgloss.Color("#282828"),
		Accent:    lipgloss.Color("#d79921"),
		Subtle:    lipgloss.Color("#665c54"),
		Text:      lipgloss.Color("#ebdbb2"),
		Dim:       lipgloss.Color("#504945"),
		Border:    lipgloss.Color("#3c3836"),
		StatusBg:  lipgloss.Color("#3c3836"),
		StatusFg:  lipgloss.Color("#ebdbb2"),
		Error:     lipgloss.Color("#fb4934"),
		ReadMode:  lipgloss.Color("#83a598"),
		ViewMode:  lipgloss.Color("#fabd2f"),
		EditMode:  lipgloss.Color("#b8bb26"),
		Selection: lipgloss.Color("#504945"),
	},
	"tokyo-night": {
		Name:      "tokyo-night",
		Bg:        lipgloss.Color("#1a1b26"),
		Accent:    lipgloss.Color("#7aa2f7"),
		Subtle:    lipgloss.Color("#565f89"),
		Text:      lipgloss.Color("#c0caf5"),
		Dim:       lipgloss.Color("#414868"),
		Border:    lipgloss.Color("#292e42"),
		StatusBg:  lipgloss.Color("#1f2335"),
		StatusFg:  lipgloss.Color("#c0caf5"),
		Error:     lipgloss.Color("#f7768e"),
		ReadMode:  lipgloss.Color("#7aa2f7"),
		ViewMode:  lipgloss.Color("#e0af68"),
		EditMode:  lipgloss.Color("#9ece6a"),
		Selection: lipgloss.Color("#292e42"),
	},
}

// DefaultTheme returns the default color palette (catppuccin).
func DefaultTheme() Theme {
	return themes["catppuccin"]
}

// Get returns a theme by name, defaulting to catppuccin.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return DefaultTheme()
}

// Names lists the built-in themes.
func Names() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithOverrides replaces palette entries by field name, e.g. "accent" or
// "status_bg". Values are lipgloss colors: hex strings or ANSI numbers.
func WithOverrides(base Theme, colors map[string]string) (Theme, error) {
	t := base
	for key, value := range colors {
		field, ok := t.field(strings.ToLower(key))
		if !ok {
			return base, fmt.Errorf("unknown theme color %q", key)
		}
		if value == "" {
			continue
		}
		*field = lipgloss.Color(value)
	}
	return t, nil
}

func (t *Theme) field(key string) (*lipgloss.Color, bool) {
	fields := map[string]*lipgloss.Color{
		"bg":        &t.Bg,
		"accent":    &t.Accent,
		"subtle":    &t.Subtle,
		"text":      &t.Text,
		"dim":       &t.Dim,
		"border":    &t.Border,
		"status_bg": &t.StatusBg,
		"status_fg": &t.StatusFg,
		"error":     &t.Error,
		"read_mode": &t.ReadMode,
		"view_mode": &t.ViewMode,
		"edit_mode": &t.EditMode,
		"selection": &t.Selection,
	}
	f, ok := fields[key]
	return f, ok
}
