package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Goldmark adapts the goldmark Markdown parser to the Parser interface.
// It is stateless and safe to share; construct one explicitly and pass it
// where needed rather than relying on a package-level singleton.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a goldmark-backed parser with default CommonMark
// settings.
func NewGoldmark() *Goldmark {
	return &Goldmark{md: goldmark.New()}
}

// Parse returns the document's top-level nodes in order. Nodes without any
// source segment (thematic breaks, some empty constructs) are dropped.
func (g *Goldmark) Parse(source string) []Node {
	src := []byte(source)
	doc := g.md.Parser().Parse(text.NewReader(src))

	var nodes []Node
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		start, ok := nodeStart(c, src)
		if !ok {
			continue
		}
		end := nodeEnd(c)
		if end < start {
			end = start
		}
		nodes = append(nodes, Node{Start: start, End: end})
	}
	return nodes
}

// nodeStart resolves the byte offset of the first source line belonging to
// n. goldmark segments begin after list/quote markers and exclude code
// fences, so the offset is widened to the start of its line, and for a
// fenced code block one line further up to the opening fence.
func nodeStart(n ast.Node, src []byte) (int, bool) {
	seg, ok := firstSegmentStart(n)
	if !ok {
		return 0, false
	}
	start := lineStart(src, seg)
	if n.Kind() == ast.KindFencedCodeBlock {
		start = prevLineStart(src, start)
	}
	return start, true
}

// nodeEnd returns the stop offset of the last segment under n, or 0 if none.
func nodeEnd(n ast.Node) int {
	stop, _ := lastSegmentStop(n)
	return stop
}

// firstSegmentStart walks block descendants in document order for the first
// captured segment.
func firstSegmentStart(n ast.Node) (int, bool) {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if start, ok := firstSegmentStart(c); ok {
			return start, true
		}
	}
	return 0, false
}

// lastSegmentStop walks block descendants in reverse document order for the
// last captured segment.
func lastSegmentStop(n ast.Node) (int, bool) {
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if stop, ok := lastSegmentStop(c); ok {
			return stop, true
		}
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(lines.Len() - 1).Stop, true
	}
	return 0, false
}

// lineStart returns the offset of the first byte of the line containing i.
func lineStart(src []byte, i int) int {
	if i > len(src) {
		i = len(src)
	}
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

// prevLineStart returns the start of the line preceding the line starting
// at i, or i itself when there is no preceding line.
func prevLineStart(src []byte, i int) int {
	if i == 0 {
		return 0
	}
	return lineStart(src, i-1)
}
