package engine

import (
	"strconv"
	"strings"

	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/engine/focus"
)

// listItem is one parsed list line: indentation, its marker ("- " or
// "N. "), and the item text after the marker.
type listItem struct {
	indent  string
	marker  string
	ordered bool
	n       int
	text    string
}

// Enter handles the Enter key inside block i at content offset at. On a
// line recognized as a list item it continues the list (or ends it when the
// final item is empty); on any other line it splits the block.
func (e *Engine) Enter(doc string, i, at int) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind == block.KindText {
		content := b.Content()
		at = clampOffset(at, len(content))
		ls, le := lineBounds(content, at)
		if item, ok := parseListItem(content[ls:le]); ok {
			return e.listEnter(blocks, i, content, ls, le, item)
		}
	}
	return e.Split(doc, i, at)
}

// listEnter continues or ends a list at the item on [ls, le).
func (e *Engine) listEnter(blocks []block.Block, i int, content string, ls, le int, item listItem) Result {
	// Enter on an empty final item removes the item and ends the list with
	// a split at that point.
	if item.text == "" && le == len(content) {
		rest := strings.TrimSuffix(content[:ls], "\n")
		return Result{
			Doc: rebuild(blocks, i,
				block.Encode(block.KindText, "", blankToEmpty(rest)),
				block.Encode(block.KindText, "", "")),
			Focus: focus.At(i+1, 0),
		}
	}

	// Otherwise insert a sibling item below with the same indent and
	// marker; ordered numerals increment by one.
	marker := item.marker
	if item.ordered {
		marker = strconv.Itoa(item.n+1) + ". "
	}
	newLine := item.indent + marker
	newContent := content[:le] + "\n" + newLine + content[le:]
	return Result{
		Doc:   rebuild(blocks, i, block.Encode(block.KindText, "", newContent)),
		Focus: focus.At(i, le+1+len(newLine)),
	}
}

// Indent increases the focused list item's indentation by one step. Ordered
// numerals reset to 1 at the new depth. On non-list lines it is a no-op.
func (e *Engine) Indent(doc string, i, at int) Result {
	return e.reindent(doc, i, at, true)
}

// Outdent decreases the focused list item's indentation by up to one step,
// floored at column zero. On non-list lines it is a no-op.
func (e *Engine) Outdent(doc string, i, at int) Result {
	return e.reindent(doc, i, at, false)
}

func (e *Engine) reindent(doc string, i, at int, deeper bool) Result {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind != block.KindText {
		return Result{Doc: doc, Focus: focus.At(i, at)}
	}
	content := b.Content()
	at = clampOffset(at, len(content))
	ls, le := lineBounds(content, at)
	item, ok := parseListItem(content[ls:le])
	if !ok {
		return Result{Doc: doc, Focus: focus.At(i, at)}
	}

	indent := item.indent
	marker := item.marker
	if deeper {
		indent += strings.Repeat(" ", e.indentStep)
		if item.ordered {
			marker = "1. "
		}
	} else {
		drop := e.indentStep
		if drop > len(indent) {
			drop = len(indent)
		}
		indent = indent[drop:]
	}

	newLine := indent + marker + item.text
	newContent := content[:ls] + newLine + content[le:]

	textOff := at - (ls + len(item.indent) + len(item.marker))
	textOff = clampOffset(textOff, len(item.text))
	return Result{
		Doc:   rebuild(blocks, i, block.Encode(block.KindText, "", newContent)),
		Focus: focus.At(i, ls+len(indent)+len(marker)+textOff),
	}
}

// MarkerLineBackspace deletes the whole line when it holds nothing but a
// list marker, which is what backspace does on an empty item. The second
// return reports whether the line qualified; when false the caller should
// fall back to ordinary backspace handling.
func (e *Engine) MarkerLineBackspace(doc string, i, at int) (Result, bool) {
	blocks := e.blocks(doc)
	e.checkIndex(blocks, i)
	b := blocks[i]

	if b.Kind != block.KindText {
		return Result{Doc: doc, Focus: focus.At(i, at)}, false
	}
	content := b.Content()
	at = clampOffset(at, len(content))
	ls, le := lineBounds(content, at)
	item, ok := parseListItem(content[ls:le])
	if !ok || item.text != "" {
		return Result{Doc: doc, Focus: focus.At(i, at)}, false
	}

	var newContent string
	switch {
	case le < len(content):
		newContent = content[:ls] + content[le+1:]
	case ls > 0:
		newContent = content[:ls-1]
	default:
		newContent = ""
	}
	cursor := ls
	if cursor > 0 {
		cursor--
	}
	return Result{
		Doc:   rebuild(blocks, i, block.Encode(block.KindText, "", blankToEmpty(newContent))),
		Focus: focus.At(i, clampOffset(cursor, len(newContent))),
	}, true
}

// lineBounds returns the [start, end) of the line containing offset at,
// excluding the newline.
func lineBounds(content string, at int) (int, int) {
	start := at
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := at
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return start, end
}

// parseListItem recognizes unordered ("- ") and ordered ("N. ") list lines.
func parseListItem(line string) (listItem, bool) {
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	rest := line[len(indent):]

	if strings.HasPrefix(rest, "- ") {
		return listItem{indent: indent, marker: "- ", text: rest[2:]}, true
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 && strings.HasPrefix(rest[digits:], ". ") {
		n, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return listItem{}, false
		}
		return listItem{
			indent:  indent,
			marker:  rest[:digits+2],
			ordered: true,
			n:       n,
			text:    rest[digits+2:],
		}, true
	}
	return listItem{}, false
}

// clampOffset bounds a content offset to [0, max].
func clampOffset(at, max int) int {
	if at < 0 {
		return 0
	}
	if at > max {
		return max
	}
	return at
}
