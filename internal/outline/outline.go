// Package outline derives a navigable heading tree from a note's blocks.
package outline

import "github.com/pfassina/scoria/internal/markdown"

// Entry is one heading in the outline.
type Entry struct {
	Level    int
	Text     string
	Row      int            // index of the heading block
	End      int            // first block index after the section
	Section  markdown.Range // bytes from the heading to the end of its section
	Children []*Entry
	Expanded bool

	parent *Entry
	depth  int
}

// Depth is the nesting depth, 0 for top-level entries.
func (e *Entry) Depth() int { return e.depth }

// Contains reports whether the block at row belongs to the entry's section.
func (e *Entry) Contains(row int) bool {
	return row >= e.Row && row < e.End
}

func (e *Entry) visible() bool {
	for p := e.parent; p != nil; p = p.parent {
		if !p.Expanded {
			return false
		}
	}
	return true
}

// Outline is a heading tree with a selection over its visible entries.
type Outline struct {
	roots    []*Entry
	visible  []*Entry
	selected int
}

// New builds the outline of blocks with every entry expanded.
func New(blocks []markdown.Block) *Outline {
	o := &Outline{selected: -1}

	var stack []*Entry
	var all []*Entry
	for row, b := range blocks {
		if !b.IsHeading() {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= b.Level {
			stack = stack[:len(stack)-1]
		}

		e := &Entry{Level: b.Level, Text: b.Text, Row: row, Expanded: true}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			e.parent = parent
			e.depth = parent.depth + 1
			parent.Children = append(parent.Children, e)
		} else {
			o.roots = append(o.roots, e)
		}
		stack = append(stack, e)
		all = append(all, e)
	}

	// A section runs until the next heading of the same or a higher level.
	for i, e := range all {
		e.End = len(blocks)
		for _, next := range all[i+1:] {
			if next.Level <= e.Level {
				e.End = next.Row
				break
			}
		}
		e.Section = markdown.Range{
			Start: blocks[e.Row].Range.Start,
			End:   blocks[e.End-1].Range.End,
		}
	}

	o.refresh()
	return o
}

func (o *Outline) refresh() {
	var cur *Entry
	if o.selected >= 0 && o.selected < len(o.visible) {
		cur = o.visible[o.selected]
	}

	o.visible = o.visible[:0]
	var walk func([]*Entry)
	walk = func(entries []*Entry) {
		for _, e := range entries {
			o.visible = append(o.visible, e)
			if e.Expanded {
				walk(e.Children)
			}
		}
	}
	walk(o.roots)

	o.selected = -1
	for i, e := range o.visible {
		if e == cur {
			o.selected = i
		}
	}
}

// Entries returns the top-level entries.
func (o *Outline) Entries() []*Entry { return o.roots }

// Visible returns the entries not hidden by a collapsed ancestor, in order.
func (o *Outline) Visible() []*Entry { return o.visible }

// Index returns the position of the selection in Visible, or -1.
func (o *Outline) Index() int { return o.selected }

// Selected returns the selected entry.
func (o *Outline) Selected() (*Entry, bool) {
	if o.selected < 0 || o.selected >= len(o.visible) {
		return nil, false
	}
	return o.visible[o.selected], true
}

func (o *Outline) Up() {
	if o.selected > 0 {
		o.selected--
	}
}

func (o *Outline) Down() {
	if o.selected < len(o.visible)-1 {
		o.selected++
	}
}

// Toggle expands or collapses the selected entry.
func (o *Outline) Toggle() {
	e, ok := o.Selected()
	if !ok || len(e.Children) == 0 {
		return
	}
	e.Expanded = !e.Expanded
	o.refresh()
}

// SelectAt selects the deepest entry whose section holds the block at row,
// or its nearest visible ancestor. Rows before the first heading clear the
// selection.
func (o *Outline) SelectAt(row int) {
	var found *Entry
	entries := o.roots
	for {
		var next *Entry
		for _, e := range entries {
			if e.Contains(row) {
				next = e
				break
			}
		}
		if next == nil {
			break
		}
		found = next
		entries = next.Children
	}

	for found != nil && !found.visible() {
		found = found.parent
	}

	o.selected = -1
	for i, e := range o.visible {
		if e == found {
			o.selected = i
		}
	}
}
