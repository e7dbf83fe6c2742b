package document

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestBufferEditing(t *testing.T) {
	b := NewTextBuffer("hello\nworld")
	b.SetCursor(0, 5)
	b.InsertNewline()
	b.InsertString("there")
	assert.Equal(t, "hello\nthere\nworld", b.String())

	b.SetCursor(1, 0)
	assert.True(t, b.Backspace())
	assert.Equal(t, "hellothere\nworld", b.String())
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 5, col)

	b.SetCursor(0, 10)
	assert.True(t, b.DeleteForward())
	assert.Equal(t, "hellothereworld", b.String())

	b.SetCursor(0, 0)
	assert.False(t, b.Backspace())
	b.Move(MoveEnd)
	assert.False(t, b.DeleteForward())
}

func TestBufferSetCursorClamps(t *testing.T) {
	b := NewTextBuffer("ab\nc")
	b.SetCursor(5, 5)
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestBufferWordMotion(t *testing.T) {
	b := NewTextBuffer("one two  three")
	b.Move(MoveWordForward)
	_, col := b.Cursor()
	assert.Equal(t, 3, col, "word forward stops at the end of the word")

	b.Move(MoveWordForward)
	_, col = b.Cursor()
	assert.Equal(t, 7, col)

	b.Move(MoveWordBackward)
	_, col = b.Cursor()
	assert.Equal(t, 4, col)
}

func TestBufferCrossesLines(t *testing.T) {
	b := NewTextBuffer("ab\ncd\nef")
	assert.True(t, b.AtFirstLine())
	assert.False(t, b.AtLastLine())
	assert.Equal(t, 3, b.LineCount())

	b.Move(MoveBottom)
	row, _ := b.Cursor()
	assert.Equal(t, 2, row)
	assert.True(t, b.AtLastLine())

	b.SetCursor(1, 0)
	b.Move(MoveLeft)
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 2, col)

	b.Move(MoveRight)
	row, col = b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	b.Move(MoveEnd)
	_, col = b.Cursor()
	assert.Equal(t, 2, col)
	b.Move(MoveHead)
	_, col = b.Cursor()
	assert.Equal(t, 0, col)

	assert.Equal(t, []string{"ab", "cd", "ef"}, b.Lines())
}

func TestBufferInput(t *testing.T) {
	b := NewTextBuffer("")
	assert.True(t, b.Input(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo")}))
	assert.True(t, b.Input(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.True(t, b.Input(tea.KeyMsg{Type: tea.KeyTab}))
	assert.True(t, b.Input(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.True(t, b.Input(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.False(t, b.Input(tea.KeyMsg{Type: tea.KeyLeft}))
	assert.False(t, b.Input(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}))

	assert.Equal(t, "héllo     ", b.String())
	_, col := b.Cursor()
	assert.Equal(t, 9, col)
}

func TestBufferBlank(t *testing.T) {
	assert.True(t, NewTextBuffer(" \n\t").IsBlank())
	assert.False(t, NewTextBuffer(" a").IsBlank())
}
