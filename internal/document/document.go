// Package document holds a note being read or edited one block at a time.
package document

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/scoria/internal/markdown"
	"github.com/pfassina/scoria/internal/vault"
)

// Mode is the interaction level of a document.
type Mode int

const (
	// Read renders the whole note.
	Read Mode = iota
	// View navigates block by block, showing the current block raw.
	View
	// Edit loads the current block into the text buffer.
	Edit
)

func (m Mode) String() string {
	switch m {
	case View:
		return "VIEW"
	case Edit:
		return "EDIT"
	}
	return "READ"
}

// Document is a note's content, its parsed blocks and the buffer of the
// block under the cursor.
type Document struct {
	path     string
	content  string
	original string
	blocks   []markdown.Block
	row      int
	buf      *TextBuffer
	mode     Mode
	dirty    bool
	modified bool
	scroll   int
	revision int

	// stale is set after a merge, when blocks no longer match a parse of
	// content even if the text ends up unchanged.
	stale bool
}

// New parses content and places the cursor on the first block.
func New(path, content string, mode Mode) *Document {
	if mode == Edit {
		mode = View
	}
	d := &Document{
		path:     path,
		content:  content,
		original: content,
		blocks:   markdown.Parse(content),
		mode:     mode,
	}
	d.seed()
	return d
}

func (d *Document) Path() string             { return d.path }
func (d *Document) Content() string          { return d.content }
func (d *Document) Blocks() []markdown.Block { return d.blocks }
func (d *Document) Row() int                 { return d.row }
func (d *Document) Mode() Mode               { return d.mode }
func (d *Document) Dirty() bool              { return d.dirty }
func (d *Document) Modified() bool           { return d.modified }
func (d *Document) Scroll() int              { return d.scroll }
func (d *Document) Buffer() *TextBuffer      { return d.buf }

// Revision counts re-parses. It changes whenever Blocks changes.
func (d *Document) Revision() int { return d.revision }

// CurrentBlock returns the block under the cursor.
func (d *Document) CurrentBlock() (markdown.Block, bool) {
	if len(d.blocks) == 0 {
		return markdown.Block{}, false
	}
	return d.blocks[d.row], true
}

// seed loads the current block's body into a fresh buffer.
func (d *Document) seed() {
	b, ok := d.CurrentBlock()
	if !ok {
		d.buf = NewTextBuffer(d.content)
		return
	}
	d.buf = NewTextBuffer(b.Source(d.content))
}

func (d *Document) reseedKeepCursor() {
	row, col := d.buf.Cursor()
	d.seed()
	d.buf.SetCursor(row, col)
}

// Reconcile folds the buffer into the content when it has pending edits.
func (d *Document) Reconcile() {
	if d.dirty || d.stale {
		d.reconcile()
	}
}

func (d *Document) reconcile() {
	content, blocks := Reconcile(d.content, d.blocks, d.row, d.buf.String())
	switch {
	case content != d.content:
		d.content, d.blocks = content, blocks
		d.revision++
	case d.stale:
		d.blocks = markdown.Parse(d.content)
		d.revision++
	}
	d.stale = false
	d.dirty = false
	d.modified = d.content != d.original
	d.row = clamp(d.row, 0, max(len(d.blocks)-1, 0))
	d.reseedKeepCursor()
}

// SetMode switches between Read and View. Entering Edit goes through
// EnterEdit and leaving it through ExitEdit so the buffer stays consistent.
func (d *Document) SetMode(m Mode) {
	switch {
	case m == Edit:
		d.EnterEdit()
	case d.mode == Edit:
		d.ExitEdit()
		d.mode = m
	default:
		d.mode = m
	}
}

// EnterEdit starts editing the current block.
func (d *Document) EnterEdit() {
	if d.mode == Edit {
		return
	}
	if !d.dirty {
		d.reseedKeepCursor()
	}
	d.mode = Edit
}

// ExitEdit reconciles pending edits and returns to View.
func (d *Document) ExitEdit() {
	if d.mode != Edit {
		return
	}
	d.Reconcile()
	d.mode = View
}

// CursorUp moves up a line, crossing into the previous block at the top of
// the buffer. A dirty buffer is reconciled before crossing.
func (d *Document) CursorUp() {
	if !d.buf.AtFirstLine() {
		d.buf.Move(MoveUp)
		return
	}
	d.Reconcile()
	if d.row == 0 {
		return
	}
	d.row--
	d.seed()
	d.buf.Move(MoveBottom)
}

// CursorDown moves down a line, crossing into the next block at the bottom
// of the buffer. A dirty buffer is reconciled before crossing.
func (d *Document) CursorDown() {
	if !d.buf.AtLastLine() {
		d.buf.Move(MoveDown)
		return
	}
	d.Reconcile()
	if d.row >= len(d.blocks)-1 {
		return
	}
	d.row++
	d.seed()
	d.buf.Move(MoveTop)
}

// Move applies a horizontal cursor motion inside the buffer.
func (d *Document) Move(m Motion) {
	d.buf.Move(m)
}

// SetRow jumps to the block at row.
func (d *Document) SetRow(row int) {
	d.Reconcile()
	if len(d.blocks) == 0 {
		return
	}
	d.row = clamp(row, 0, len(d.blocks)-1)
	d.seed()
}

// Input applies a key press to the buffer while editing.
func (d *Document) Input(msg tea.KeyMsg) {
	if d.mode != Edit {
		return
	}
	if d.buf.Input(msg) {
		d.dirty = true
	}
}

// Delete removes the rune before the cursor. At the very start of the buffer
// it merges the block into the previous one, or just reconciles when the
// buffer is blank.
func (d *Document) Delete() {
	if d.mode != Edit {
		return
	}
	row, col := d.buf.Cursor()
	if row > 0 || col > 0 {
		if d.buf.Backspace() {
			d.dirty = true
		}
		return
	}
	if d.buf.IsBlank() {
		d.reconcile()
		return
	}
	if d.row > 0 && len(d.blocks) > 1 {
		d.merge()
	}
}

func (d *Document) merge() {
	prev := d.blocks[d.row-1]
	cur := d.blocks[d.row]
	text := prev.Source(d.content)

	prev.Range.End = cur.Range.End
	prev.Body.End = cur.Body.End

	blocks := make([]markdown.Block, 0, len(d.blocks)-1)
	blocks = append(blocks, d.blocks[:d.row-1]...)
	blocks = append(blocks, prev)
	blocks = append(blocks, d.blocks[d.row+1:]...)
	d.blocks = blocks
	d.row--

	d.buf = NewTextBuffer(text + "\n" + d.buf.String())
	d.buf.SetCursor(strings.Count(text, "\n")+1, 0)
	d.dirty = true
	d.stale = true
}

// ScrollBy moves the read scroll position, never above the top.
func (d *Document) ScrollBy(delta int) {
	d.scroll = max(d.scroll+delta, 0)
}

// ClampScroll keeps the scroll position at most limit.
func (d *Document) ClampScroll(limit int) {
	d.scroll = clamp(d.scroll, 0, max(limit, 0))
}

// Save writes the content to disk when it differs from what was loaded.
// It reports whether a write happened. A failed write keeps the document
// modified.
func (d *Document) Save() (bool, error) {
	d.Reconcile()
	if !d.modified {
		return false, nil
	}
	if err := vault.WriteNote(d.path, d.content); err != nil {
		return false, fmt.Errorf("save %s: %w", d.path, err)
	}
	d.original = d.content
	d.modified = false
	return true, nil
}
