package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse splits content into its top-level blocks. It never fails: content
// with no recognisable structure comes back as a single paragraph, and empty
// content yields no blocks.
func Parse(content string) []Block {
	src := []byte(content)
	if len(src) == 0 {
		return nil
	}

	var blocks []Block
	offset := 0
	if fm := ExtractFrontmatter(src); fm != nil {
		blocks = append(blocks, Block{Kind: KindFrontmatter, Range: Range{Start: 0}})
		offset = fm.End
	}

	body := src[offset:]
	doc := md.Parser().Parse(text.NewReader(body))

	after := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		start := blockStart(body, n, after)
		after = blockAfter(body, n, start)

		// Nodes that share a line with the previous block fold into it.
		if len(blocks) > 0 && start+offset <= blocks[len(blocks)-1].Range.Start {
			continue
		}
		b := newBlock(body, n)
		b.Range.Start = start + offset
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 {
		blocks = append(blocks, Block{Kind: KindParagraph})
	}

	blocks[0].Range.Start = 0
	for i := range blocks {
		end := len(src)
		if i+1 < len(blocks) {
			end = blocks[i+1].Range.Start
		}
		blocks[i].Range.End = end
		blocks[i].Body = Range{Start: blocks[i].Range.Start, End: bodyEnd(src, blocks[i].Range.Start, end)}
	}
	return blocks
}

func newBlock(src []byte, n ast.Node) Block {
	switch n := n.(type) {
	case *ast.Heading:
		return Block{Kind: KindHeading, Level: n.Level, Text: headingText(src, n)}
	case *ast.List:
		return Block{Kind: KindList}
	case *ast.Blockquote:
		return Block{Kind: KindBlockquote}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return Block{Kind: KindCodeBlock}
	case *ast.ThematicBreak:
		return Block{Kind: KindThematicBreak}
	case *ast.HTMLBlock:
		return Block{Kind: KindHTML}
	case *east.Table:
		return Block{Kind: KindTable}
	}
	return Block{Kind: KindParagraph}
}

func headingText(src []byte, h *ast.Heading) string {
	var parts []string
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// blockStart finds the offset of the first line that belongs to n. after is
// the end of the previous block's last line.
func blockStart(src []byte, n ast.Node, after int) int {
	first, _, ok := segmentBounds(n)

	switch n := n.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.HTMLBlock, *ast.CodeBlock, *east.Table:
		if ok {
			return lineStart(src, first)
		}
	case *ast.FencedCodeBlock:
		if n.Info != nil {
			return lineStart(src, n.Info.Segment.Start)
		}
		if n.Lines().Len() > 0 {
			return prevLineStart(src, lineStart(src, n.Lines().At(0).Start))
		}
	}

	start := nextLine(src, after)
	if ok && lineStart(src, first) < start {
		start = lineStart(src, first)
	}
	return start
}

// blockAfter returns the end of the last line that belongs to n, including
// closing fences and setext underlines the AST keeps no segment for.
func blockAfter(src []byte, n ast.Node, start int) int {
	_, last, ok := segmentBounds(n)
	after := lineEnd(src, start)
	if ok && last > start {
		if e := lineEnd(src, last-1); e > after {
			after = e
		}
	}
	if after >= len(src) {
		return len(src)
	}

	switch n.(type) {
	case *ast.FencedCodeBlock:
		if isFence(lineAt(src, after)) {
			after = lineEnd(src, after)
		}
	case *ast.Heading:
		atx := bytes.HasPrefix(bytes.TrimLeft(lineAt(src, start), " "), []byte("#"))
		if !atx && isSetextUnderline(lineAt(src, after)) {
			after = lineEnd(src, after)
		}
	}
	return after
}

// segmentBounds returns the smallest start and largest stop of any source
// segment in n's subtree.
func segmentBounds(n ast.Node) (first, last int, ok bool) {
	first, last = -1, -1
	add := func(s text.Segment) {
		if first < 0 || s.Start < first {
			first = s.Start
		}
		if s.Stop > last {
			last = s.Stop
		}
	}

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := node.(type) {
		case *ast.Text:
			add(c.Segment)
		case *ast.FencedCodeBlock:
			if c.Info != nil {
				add(c.Info.Segment)
			}
		case *ast.HTMLBlock:
			if c.HasClosure() {
				add(c.ClosureLine)
			}
		}
		if node.Type() == ast.TypeBlock {
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				add(lines.At(i))
			}
		}
		return ast.WalkContinue, nil
	})

	return first, last, first >= 0
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

func prevLineStart(src []byte, start int) int {
	if start == 0 {
		return 0
	}
	return lineStart(src, start-1)
}

// lineEnd returns the offset just past the newline ending the line at pos.
func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func lineAt(src []byte, pos int) []byte {
	end := lineEnd(src, pos)
	return bytes.TrimRight(src[pos:end], "\r\n")
}

// nextLine skips blank lines starting at pos.
func nextLine(src []byte, pos int) int {
	for pos < len(src) {
		if len(bytes.TrimSpace(lineAt(src, pos))) > 0 {
			return pos
		}
		pos = lineEnd(src, pos)
	}
	return len(src)
}

func isFence(line []byte) bool {
	t := bytes.TrimSpace(line)
	if len(t) < 3 || len(line)-len(bytes.TrimLeft(line, " ")) > 3 {
		return false
	}
	c := t[0]
	if c != '`' && c != '~' {
		return false
	}
	for _, b := range t {
		if b != c {
			return false
		}
	}
	return true
}

func isSetextUnderline(line []byte) bool {
	if len(line)-len(bytes.TrimLeft(line, " ")) > 3 {
		return false
	}
	t := bytes.TrimSpace(line)
	if len(t) == 0 || (t[0] != '=' && t[0] != '-') {
		return false
	}
	for _, b := range t {
		if b != t[0] {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// bodyEnd trims the blank lines at the end of [start, end). Trailing spaces on
// the last text line stay in the body.
func bodyEnd(src []byte, start, end int) int {
	i := end
	for i > start && isSpace(src[i-1]) {
		i--
	}
	if i == start {
		return start
	}
	for i < end && src[i] != '\n' {
		i++
	}
	return i
}
