package document

import "github.com/pfassina/scoria/internal/markdown"

// Reconcile folds the edited text of blocks[row] back into content and
// re-derives the block list. The block's body is replaced in place, so the
// separators around it are kept as they were. When the result equals content
// the inputs are returned untouched. With no blocks, edited replaces the
// whole content.
func Reconcile(content string, blocks []markdown.Block, row int, edited string) (string, []markdown.Block) {
	next := edited
	if len(blocks) > 0 {
		b := blocks[row]
		next = content[:b.Body.Start] + edited + content[b.Body.End:]
	}
	if next == content {
		return content, blocks
	}
	return next, markdown.Parse(next)
}
