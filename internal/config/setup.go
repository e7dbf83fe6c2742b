package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/scoria/internal/theme"
)

const defaultVaultDir = "~/notes"

// SetupResult is returned by RunSetup.
type SetupResult struct {
	Vault     VaultConfig
	Cancelled bool
}

type setupStep int

const (
	stepPath setupStep = iota
	stepName
)

// setupModel asks for a vault directory, then for the vault's name.
type setupModel struct {
	step      setupStep
	path      textinput.Model
	name      textinput.Model
	vault     VaultConfig
	err       error
	cancelled bool
	theme     theme.Theme
}

func newSetupModel(th theme.Theme) setupModel {
	path := textinput.New()
	path.Placeholder = defaultVaultDir
	path.CharLimit = 256
	path.Width = 50
	path.Focus()

	name := textinput.New()
	name.CharLimit = 64
	name.Width = 50

	return setupModel{path: path, name: name, theme: th}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	m.err = nil
	var cmd tea.Cmd
	if m.step == stepPath {
		m.path, cmd = m.path.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m setupModel) submit() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepPath:
		dir := ExpandHome(orDefault(strings.TrimSpace(m.path.Value()), defaultVaultDir))
		if err := validateVaultPath(dir); err != nil {
			m.err = err
			return m, nil
		}
		m.vault.Path = dir
		m.step = stepName
		m.path.Blur()
		m.name.Placeholder = filepath.Base(dir)
		return m, m.name.Focus()
	default:
		m.vault.Name = orDefault(strings.TrimSpace(m.name.Value()), filepath.Base(m.vault.Path))
		return m, tea.Quit
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (m setupModel) View() string {
	th := m.theme
	accent := lipgloss.NewStyle().Foreground(th.Accent)
	text := lipgloss.NewStyle().Foreground(th.Text)
	dim := lipgloss.NewStyle().Foreground(th.Dim)

	var b strings.Builder
	b.WriteString("\n " + accent.Bold(true).Render("scoria") + text.Render(" · first run") + "\n\n")
	if m.step == stepPath {
		b.WriteString(" " + text.Render("No vault found. Which directory holds your notes?") + "\n\n")
		b.WriteString("   " + m.path.View() + "\n\n")
	} else {
		b.WriteString(" " + dim.Render("vault  ") + text.Render(m.vault.Path) + "\n\n")
		b.WriteString(" " + text.Render("Name it:") + "\n\n")
		b.WriteString("   " + m.name.View() + "\n\n")
	}
	if m.err != nil {
		b.WriteString(" " + lipgloss.NewStyle().Foreground(th.Error).Render(m.err.Error()) + "\n\n")
	}
	b.WriteString(" " + dim.Render("enter confirm · esc cancel") + "\n")
	return b.String()
}

// validateVaultPath accepts an existing directory or a path whose parent is
// a directory, so the vault can be created.
func validateVaultPath(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s is not a directory", path)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	parent := filepath.Dir(path)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return fmt.Errorf("cannot create %s: %s is not a directory", path, parent)
	}
	return nil
}

// RunSetup asks for a first vault, creates its directory and records it in
// config.toml.
func RunSetup(th theme.Theme) (SetupResult, error) {
	final, err := tea.NewProgram(newSetupModel(th)).Run()
	if err != nil {
		return SetupResult{}, err
	}
	m, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("setup: unexpected model %T", final)
	}
	if m.cancelled {
		return SetupResult{Cancelled: true}, nil
	}

	if err := os.MkdirAll(m.vault.Path, 0755); err != nil {
		return SetupResult{}, fmt.Errorf("create vault: %w", err)
	}
	if err := SaveVault(m.vault); err != nil {
		return SetupResult{}, fmt.Errorf("save config: %w", err)
	}
	return SetupResult{Vault: m.vault}, nil
}
