package app

// Layout computes the dimensions for each panel.
type Layout struct {
	ExplorerWidth int
	EditorWidth   int
	OutlineWidth  int
	Height        int
	StatusHeight  int
}

// ComputeLayout calculates panel dimensions based on total width/height
// and whether each side panel is open.
func ComputeLayout(totalWidth, totalHeight int, showExplorer, showOutline bool, explorerWidth, outlineWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into panels.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 { // need at least 1 row for content + 1 for status
		totalHeight = 2
	}

	l := Layout{
		StatusHeight: 1,
		Height:       totalHeight - 1, // reserve 1 row for status bar
	}

	remaining := totalWidth

	if showExplorer {
		l.ExplorerWidth = min(explorerWidth, remaining/3)
		remaining -= l.ExplorerWidth
	}

	if showOutline {
		l.OutlineWidth = min(outlineWidth, remaining/3)
		remaining -= l.OutlineWidth
	}

	l.EditorWidth = remaining
	// The terminal can get very narrow; never force a minimum width larger
	// than the available space.
	if l.EditorWidth < 1 {
		l.EditorWidth = 1
	}

	return l
}
