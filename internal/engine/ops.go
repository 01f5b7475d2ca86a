package engine

import (
	"strings"

	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/engine/focus"
)

// SetContent re-encodes block i's editable content and splices it into the
// document, preserving the block's kind and fence info.
//
// One exception: while block i is text and the content ends with an
// unmatched "$$" or an unopened trailing triple backtick, a fresh stub
// math/code block is inserted immediately after instead. This is the sole
// mechanism for spontaneously creating a math or code block.
func (e *Engine) SetContent(doc string, i int, editable string) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind == block.KindText {
		if kind, ok := trailingFenceKind(editable); ok {
			raw := block.Encode(block.KindText, "", editable)
			stub := block.Encode(kind, "", "")
			return Result{
				Doc:   rebuild(blocks, i, raw, stub),
				Focus: focus.At(i+1, 0),
			}
		}
	}

	raw := block.Encode(b.Kind, b.Info, editable)
	return Result{
		Doc:   rebuild(blocks, i, raw),
		Focus: focus.At(i, len(editable)),
	}
}

// Split slices text block i at the given content offset into two blocks.
// A half that is blank after trimming becomes the sentinel; a non-blank
// half keeps its text untrimmed. Focus lands on the new block at offset 0.
// Splitting a non-text block is illegal and degrades to a no-op.
func (e *Engine) Split(doc string, i, at int) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind != block.KindText {
		return Result{Doc: doc, Focus: focus.At(i, at)}
	}

	content := b.Content()
	if at < 0 {
		at = 0
	}
	if at > len(content) {
		at = len(content)
	}

	before := blankToEmpty(content[:at])
	after := blankToEmpty(content[at:])
	return Result{
		Doc: rebuild(blocks, i,
			block.Encode(block.KindText, "", before),
			block.Encode(block.KindText, "", after)),
		Focus: focus.At(i+1, 0),
	}
}

// MergePrevious joins block i into block i-1, trimming both sides and
// substituting the sentinel when the result is blank. The cursor lands at
// the old seam: the length of the former previous content. Merging into a
// code or math block would corrupt its fencing and is a no-op, as is
// merging at the first block.
func (e *Engine) MergePrevious(doc string, i int) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)

	if i == 0 {
		return Result{Doc: doc, Focus: focus.At(i, 0)}
	}
	prev := blocks[i-1]
	if prev.Kind == block.KindCode || prev.Kind == block.KindMath {
		return Result{Doc: doc, Focus: focus.At(i, 0)}
	}

	prevContent := strings.TrimSpace(prev.Content())
	curContent := strings.TrimSpace(blocks[i].Content())
	merged := blankToEmpty(prevContent + curContent)

	return Result{
		Doc:   rebuildMerged(blocks, i, block.Encode(block.KindText, "", merged)),
		Focus: focus.At(i-1, len(prevContent)),
	}
}

// DeleteIfEmpty removes a non-text block whose editable content is empty,
// the backspace-at-start behavior for stub code/math/canvas blocks. For
// text blocks or non-empty content it is a no-op.
func (e *Engine) DeleteIfEmpty(doc string, i int) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind == block.KindText || b.Content() != "" {
		return Result{Doc: doc, Focus: focus.At(i, 0)}
	}

	newDoc := rebuild(blocks, i)
	if i > 0 {
		return Result{Doc: newDoc, Focus: focus.At(i-1, len(blocks[i-1].Content()))}
	}
	if len(blocks) > 1 {
		return Result{Doc: newDoc, Focus: focus.At(0, 0)}
	}
	return Result{Doc: newDoc, Focus: focus.None()}
}

// trailingFenceKind reports whether text ends with an unmatched math or
// code fence opener.
func trailingFenceKind(text string) (block.Kind, bool) {
	if strings.HasSuffix(text, "```") && strings.Count(text, "```")%2 == 1 {
		return block.KindCode, true
	}
	if strings.HasSuffix(text, "$$") && strings.Count(text, "$$")%2 == 1 {
		return block.KindMath, true
	}
	return block.KindText, false
}

// blankToEmpty maps whitespace-only content to the empty string so the
// codec substitutes the sentinel.
func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
