package keymap

var defaultBindings = map[Scope][][2]string{
	ScopeGlobal: {
		{"q", "quit"},
		{"ctrl+c", "quit"},
		{"?", "help_modal_toggle"},
		{"ctrl+g", "vault_selector_modal_toggle"},
	},
	ScopeSplash: {
		{"k", "splash_up"},
		{"up", "splash_up"},
		{"j", "splash_down"},
		{"down", "splash_down"},
		{"enter", "splash_open"},
	},
	ScopeExplorer: {
		{"k", "explorer_up"},
		{"up", "explorer_up"},
		{"j", "explorer_down"},
		{"down", "explorer_down"},
		{"enter", "explorer_open"},
		{"s", "explorer_sort"},
		{"t", "explorer_toggle"},
		{"ctrl+b", "explorer_toggle"},
		{"ctrl+o", "explorer_toggle_outline"},
		{"tab", "explorer_switch_pane_next"},
		{"backtab", "explorer_switch_pane_previous"},
		{"ctrl+y", "explorer_scroll_up_one"},
		{"ctrl+e", "explorer_scroll_down_one"},
		{"ctrl+u", "explorer_scroll_up_half_page"},
		{"ctrl+d", "explorer_scroll_down_half_page"},
	},
	ScopeOutline: {
		{"k", "outline_up"},
		{"up", "outline_up"},
		{"j", "outline_down"},
		{"down", "outline_down"},
		{"enter", "outline_select"},
		{"space", "outline_expand"},
		{"t", "outline_toggle"},
		{"ctrl+o", "outline_toggle"},
		{"ctrl+b", "outline_toggle_explorer"},
		{"tab", "outline_switch_pane_next"},
		{"backtab", "outline_switch_pane_previous"},
	},
	ScopeNoteEditor: {
		{"k", "note_editor_cursor_up"},
		{"up", "note_editor_cursor_up"},
		{"j", "note_editor_cursor_down"},
		{"down", "note_editor_cursor_down"},
		{"h", "note_editor_experimental_cursor_left"},
		{"left", "note_editor_experimental_cursor_left"},
		{"l", "note_editor_experimental_cursor_right"},
		{"right", "note_editor_experimental_cursor_right"},
		{"w", "note_editor_experimental_cursor_word_forward"},
		{"b", "note_editor_experimental_cursor_word_backward"},
		{"i", "note_editor_experimental_set_edit_mode"},
		{"r", "note_editor_experimental_set_read_mode"},
		{"esc", "note_editor_experimental_exit_mode"},
		{"ctrl+s", "note_editor_experimental_save"},
		{"ctrl+y", "note_editor_scroll_up_one"},
		{"ctrl+e", "note_editor_scroll_down_one"},
		{"ctrl+u", "note_editor_scroll_up_half_page"},
		{"ctrl+d", "note_editor_scroll_down_half_page"},
		{"tab", "note_editor_switch_pane_next"},
		{"backtab", "note_editor_switch_pane_previous"},
		{"ctrl+b", "note_editor_toggle_explorer"},
		{"ctrl+o", "note_editor_toggle_outline"},
	},
	ScopeHelpModal: {
		{"esc", "help_modal_close"},
		{"k", "help_modal_scroll_up_one"},
		{"up", "help_modal_scroll_up_one"},
		{"j", "help_modal_scroll_down_one"},
		{"down", "help_modal_scroll_down_one"},
		{"ctrl+u", "help_modal_scroll_up_half_page"},
		{"ctrl+d", "help_modal_scroll_down_half_page"},
	},
	ScopeVaultSelectorModal: {
		{"k", "vault_selector_modal_up"},
		{"up", "vault_selector_modal_up"},
		{"j", "vault_selector_modal_down"},
		{"down", "vault_selector_modal_down"},
		{"enter", "vault_selector_modal_open"},
		{"esc", "vault_selector_modal_close"},
	},
}

// Defaults returns a fresh table with the built-in bindings.
func Defaults() *Table {
	t := NewTable()
	for _, scope := range Scopes {
		for _, kv := range defaultBindings[scope] {
			b, err := ParseBinding(kv[0], kv[1])
			if err != nil {
				panic(err)
			}
			t.Bind(scope, b)
		}
	}
	return t
}
