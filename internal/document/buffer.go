package document

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const tabWidth = 4

// lineWidth keeps block lines from soft wrapping, so textarea rows and
// buffer lines are the same thing.
const lineWidth = 1 << 16

// Motion is a cursor movement inside a TextBuffer.
type Motion int

const (
	MoveUp Motion = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveTop
	MoveBottom
	MoveHead
	MoveEnd
	MoveWordForward
	MoveWordBackward
)

// TextBuffer is the editable text of one block, held in a bubbles textarea.
// Columns count runes.
type TextBuffer struct {
	ta textarea.Model
}

// NewTextBuffer returns a buffer holding s with the cursor at the start.
func NewTextBuffer(s string) *TextBuffer {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(lineWidth)
	ta.Focus()
	ta.SetValue(s)

	b := &TextBuffer{ta: ta}
	b.SetCursor(0, 0)
	return b
}

func (b *TextBuffer) String() string { return b.ta.Value() }

// Lines returns the buffer's lines.
func (b *TextBuffer) Lines() []string {
	return strings.Split(b.ta.Value(), "\n")
}

func (b *TextBuffer) LineCount() int { return b.ta.LineCount() }

func (b *TextBuffer) Cursor() (row, col int) {
	li := b.ta.LineInfo()
	return b.ta.Line(), li.StartColumn + li.ColumnOffset
}

// SetCursor moves the cursor, clamping it into the buffer.
func (b *TextBuffer) SetCursor(row, col int) {
	row = clamp(row, 0, b.ta.LineCount()-1)
	for b.ta.Line() > row {
		line := b.ta.Line()
		b.ta.CursorUp()
		if b.ta.Line() == line && b.ta.LineInfo().RowOffset == 0 {
			break
		}
	}
	for b.ta.Line() < row {
		line := b.ta.Line()
		b.ta.CursorDown()
		if b.ta.Line() == line && b.AtLastLine() {
			break
		}
	}
	b.ta.SetCursor(col)
}

func (b *TextBuffer) AtFirstLine() bool {
	return b.ta.Line() == 0 && b.ta.LineInfo().RowOffset == 0
}

func (b *TextBuffer) AtLastLine() bool {
	li := b.ta.LineInfo()
	return b.ta.Line() == b.ta.LineCount()-1 && li.RowOffset >= li.Height-1
}

// IsBlank reports whether the buffer holds only whitespace.
func (b *TextBuffer) IsBlank() bool {
	return strings.TrimSpace(b.ta.Value()) == ""
}

func (b *TextBuffer) update(msg tea.KeyMsg) {
	b.ta, _ = b.ta.Update(msg)
}

// edit applies msg and reports whether the text changed.
func (b *TextBuffer) edit(msg tea.KeyMsg) bool {
	before := b.ta.Value()
	b.update(msg)
	return b.ta.Value() != before
}

// Move applies a cursor motion.
func (b *TextBuffer) Move(m Motion) {
	switch m {
	case MoveUp:
		b.ta.CursorUp()
	case MoveDown:
		b.ta.CursorDown()
	case MoveLeft:
		b.update(tea.KeyMsg{Type: tea.KeyLeft})
	case MoveRight:
		b.update(tea.KeyMsg{Type: tea.KeyRight})
	case MoveTop:
		_, col := b.Cursor()
		b.SetCursor(0, col)
	case MoveBottom:
		_, col := b.Cursor()
		b.SetCursor(b.ta.LineCount()-1, col)
	case MoveHead:
		b.ta.CursorStart()
	case MoveEnd:
		b.ta.CursorEnd()
	case MoveWordForward:
		b.update(tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	case MoveWordBackward:
		b.update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	}
}

func (b *TextBuffer) InsertRune(r rune) { b.ta.InsertRune(r) }

// InsertString inserts s at the cursor; newlines split lines.
func (b *TextBuffer) InsertString(s string) { b.ta.InsertString(s) }

// InsertNewline splits the current line at the cursor.
func (b *TextBuffer) InsertNewline() {
	b.update(tea.KeyMsg{Type: tea.KeyEnter})
}

// Backspace deletes the rune before the cursor, joining lines at a line
// start. It reports false at the start of the buffer.
func (b *TextBuffer) Backspace() bool {
	return b.edit(tea.KeyMsg{Type: tea.KeyBackspace})
}

// DeleteForward deletes the rune under the cursor, joining the next line at
// a line end. It reports false at the end of the buffer.
func (b *TextBuffer) DeleteForward() bool {
	return b.edit(tea.KeyMsg{Type: tea.KeyDelete})
}

// Input applies a key press and reports whether the text changed. Vertical
// movement is left to the caller, which decides about crossing blocks.
func (b *TextBuffer) Input(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown:
		return false
	case tea.KeyTab:
		b.InsertString(strings.Repeat(" ", tabWidth))
		return true
	case tea.KeyCtrlLeft:
		b.Move(MoveWordBackward)
		return false
	case tea.KeyCtrlRight:
		b.Move(MoveWordForward)
		return false
	case tea.KeyRunes:
		// The textarea would insert unbound alt chords as plain text.
		if msg.Alt {
			return false
		}
	}
	return b.edit(msg)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
