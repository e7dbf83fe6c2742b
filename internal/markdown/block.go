package markdown

import "fmt"

// Kind identifies the structural type of a block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindBlockquote
	KindCodeBlock
	KindThematicBreak
	KindHTML
	KindTable
	KindFrontmatter
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindBlockquote:
		return "blockquote"
	case KindCodeBlock:
		return "code"
	case KindThematicBreak:
		return "thematic-break"
	case KindHTML:
		return "html"
	case KindTable:
		return "table"
	case KindFrontmatter:
		return "frontmatter"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Range is a half-open byte range into a document.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Block is one top-level structural unit of a note.
//
// Range spans the block plus the blank lines that separate it from the next
// block, so the ranges of a parsed document are contiguous and cover it fully.
// Body is the block's own text: it starts at Range.Start and stops at the end
// of its last non-blank line.
type Block struct {
	Kind  Kind
	Level int    // heading level, 0 for other kinds
	Text  string // heading text
	Range Range
	Body  Range
}

// IsHeading reports whether the block is a heading.
func (b Block) IsHeading() bool { return b.Kind == KindHeading }

// Source returns the block's body text from content.
func (b Block) Source(content string) string {
	return content[b.Body.Start:b.Body.End]
}
