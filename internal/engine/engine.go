package engine

import (
	"fmt"

	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/document"
	"github.com/dshills/blockpad/internal/engine/focus"
	"github.com/dshills/blockpad/internal/engine/history"
)

// DefaultIndentStep is the number of spaces one list indent level adds.
const DefaultIndentStep = 2

// Result is what every edit operation produces: the new canonical document
// and the focus state the UI should adopt. Operations never fail; illegal
// requests return the input document unchanged.
type Result struct {
	Doc   string
	Focus focus.State
}

// Engine implements the edit-operation state machine over a canonical
// Markdown document. It owns the undo history; the document itself is owned
// by the caller and passed into every operation.
//
// Operations are total: merge across a fence, navigation past the bounds,
// and undo underflow all degrade to no-ops. An out-of-range block index is
// a caller bug and panics.
type Engine struct {
	model      *document.Model
	history    *history.Stack
	indentStep int
}

// Option configures an Engine.
type Option func(*Engine)

// WithUndoCapacity sets the snapshot stack capacity.
func WithUndoCapacity(n int) Option {
	return func(e *Engine) {
		e.history = history.NewStack(n)
	}
}

// WithIndentStep sets the list indentation step in spaces.
func WithIndentStep(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.indentStep = n
		}
	}
}

// New creates an engine over the given document model.
func New(model *document.Model, opts ...Option) *Engine {
	e := &Engine{
		model:      model,
		history:    history.NewStack(history.DefaultCapacity),
		indentStep: DefaultIndentStep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// History exposes the undo stack, primarily for the session layer.
func (e *Engine) History() *history.Stack {
	return e.history
}

// Commit records a document snapshot for undo. Duplicates of the current
// tail are ignored by the stack.
func (e *Engine) Commit(doc string) {
	e.history.Push(doc)
}

// Undo restores the previous snapshot if at least two exist, clearing
// focus; otherwise it is a no-op and the current focus is kept.
func (e *Engine) Undo(doc string, cur focus.State) Result {
	restored, ok := e.history.Undo()
	if !ok {
		return Result{Doc: doc, Focus: cur}
	}
	return Result{Doc: restored, Focus: focus.None()}
}

// EditPrevious moves focus to the block before the focused one, cursor at
// the end of its content. Already at the first block, or unfocused, it is a
// no-op.
func (e *Engine) EditPrevious(doc string, cur focus.State) Result {
	if !cur.Editing() || cur.Block == 0 {
		return Result{Doc: doc, Focus: cur}
	}
	blocks := e.blocks(doc)
	e.checkIndex(blocks, cur.Block)
	prev := blocks[cur.Block-1]
	return Result{Doc: doc, Focus: focus.At(cur.Block-1, len(prev.Content()))}
}

// EditNext moves focus to the block after the focused one, cursor at the
// start. Already at the last block, or unfocused, it is a no-op.
func (e *Engine) EditNext(doc string, cur focus.State) Result {
	if !cur.Editing() {
		return Result{Doc: doc, Focus: cur}
	}
	blocks := e.blocks(doc)
	e.checkIndex(blocks, cur.Block)
	if cur.Block == len(blocks)-1 {
		return Result{Doc: doc, Focus: cur}
	}
	return Result{Doc: doc, Focus: focus.At(cur.Block+1, 0)}
}

// EditNone clears focus.
func (e *Engine) EditNone(doc string) Result {
	return Result{Doc: doc, Focus: focus.None()}
}

// blocks partitions the document.
func (e *Engine) blocks(doc string) []block.Block {
	return e.model.Partition(doc)
}

// checkIndex panics on an out-of-range block index. Operations are only
// ever invoked with indices derived from the current partition, so a miss
// is a programming error, not a user condition.
func (e *Engine) checkIndex(blocks []block.Block, i int) {
	if i < 0 || i >= len(blocks) {
		panic(fmt.Sprintf("engine: block index %d out of range (%d blocks)", i, len(blocks)))
	}
}

// rebuild joins block raw contents, with block i replaced by the given raw
// strings (zero to splice it out, two to split it in place).
func rebuild(blocks []block.Block, i int, replacement ...string) string {
	var size int
	for _, b := range blocks {
		size += len(b.Raw)
	}
	out := make([]byte, 0, size)
	for j, b := range blocks {
		if j == i {
			for _, r := range replacement {
				out = append(out, r...)
			}
			continue
		}
		out = append(out, b.Raw...)
	}
	return string(out)
}

// rebuildMerged joins block raw contents with blocks i-1 and i replaced by
// a single raw string.
func rebuildMerged(blocks []block.Block, i int, merged string) string {
	out := make([]byte, 0, len(merged))
	for j, b := range blocks {
		switch j {
		case i - 1:
			out = append(out, merged...)
		case i:
		default:
			out = append(out, b.Raw...)
		}
	}
	return string(out)
}
