package document

import (
	"strings"

	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/parser"
)

// Model partitions a canonical Markdown string into blocks and enforces the
// delimiter-normalization invariant. It holds no document state itself; the
// canonical string is owned by the caller and passed in on every call.
type Model struct {
	parser parser.Parser
}

// NewModel creates a document model over the given parser.
func NewModel(p parser.Parser) *Model {
	return &Model{parser: p}
}

// Partition derives the ordered block list from the source. Each block's
// span runs from its node's start offset to the next node's start offset
// (end of source for the last node), so inter-block whitespace belongs to
// the preceding block. The first block is anchored at offset zero, which
// keeps the concatenation invariant unconditional:
//
//	concat(blocks[i].Raw) == source
//
// A source with zero addressable blocks partitions to nil.
func (m *Model) Partition(source string) []block.Block {
	nodes := m.parser.Parse(source)
	if len(nodes) == 0 {
		return nil
	}

	blocks := make([]block.Block, 0, len(nodes))
	for i, n := range nodes {
		start := n.Start
		if i == 0 {
			start = 0
		}
		end := len(source)
		if i+1 < len(nodes) {
			end = nodes[i+1].Start
		}
		if end < start {
			end = start
		}
		blocks = append(blocks, block.New(start, end, source[start:end]))
	}
	return glueMathSpans(blocks)
}

// glueMathSpans merges a block opening a $$ fence with its successors until
// the fence closes. A CommonMark parser splits "$$\n\n$$" into two
// paragraphs on the blank line; block-wise the pair is one math block, and
// keeping the fence pair in a single span is what makes math blocks
// editable as a unit.
func glueMathSpans(blocks []block.Block) []block.Block {
	glued := blocks[:0]
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		if b.Kind != block.KindMath || fenceClosed(b.Raw) {
			glued = append(glued, b)
			continue
		}
		raw := b.Raw
		end := b.End
		for i+1 < len(blocks) && !fenceClosed(raw) {
			i++
			raw += blocks[i].Raw
			end = blocks[i].End
		}
		glued = append(glued, block.New(b.Start, end, raw))
	}
	return glued
}

// fenceClosed reports whether a math block's $$ fence markers are balanced.
// Only a line that is exactly the marker counts; "$$" inside a body line is
// content, not fencing.
func fenceClosed(raw string) bool {
	markers := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "$$" {
			markers++
		}
	}
	return markers%2 == 0
}

// Normalize returns the source with every block ending in exactly two
// trailing newlines. A source with zero addressable blocks collapses to the
// single sentinel block. Normalize is idempotent.
func (m *Model) Normalize(source string) string {
	blocks := m.Partition(source)
	if len(blocks) == 0 {
		return block.Sentinel + block.Delimiter
	}

	var sb strings.Builder
	sb.Grow(len(source) + 2*len(blocks))
	for _, b := range blocks {
		sb.WriteString(normalizeRaw(b.Raw))
	}
	return sb.String()
}

// NeedsNormalize reports whether the source differs from its normalized
// form, in which case a deferred re-commit should be scheduled.
func (m *Model) NeedsNormalize(source string) bool {
	return m.Normalize(source) != source
}

// normalizeRaw pads or trims a block's trailing newlines to the delimiter.
func normalizeRaw(raw string) string {
	return strings.TrimRight(raw, "\n") + block.Delimiter
}
