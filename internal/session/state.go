package session

// State represents persisted session state.
type State struct {
	LastVault    string `json:"last_vault,omitempty"` // vault path
	LastNote     string `json:"last_note,omitempty"`  // note path relative to the vault
	ShowExplorer bool   `json:"show_explorer"`
	ShowOutline  bool   `json:"show_outline"`
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowExplorer: true,
		ShowOutline:  false,
	}
}
