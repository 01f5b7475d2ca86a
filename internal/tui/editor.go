package tui

import "github.com/rivo/uniseg"

// Editor is the line-editing buffer for the focused block. Its cursor is a
// byte offset into the text, always on a grapheme cluster boundary, so
// multi-rune clusters (emoji, combining marks) move and delete as one unit.
type Editor struct {
	text   string
	cursor int
}

// Load replaces the buffer content and places the cursor, snapped to the
// nearest preceding cluster boundary.
func (e *Editor) Load(text string, cursor int) {
	e.text = text
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	e.cursor = snapBoundary(text, cursor)
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	return e.text
}

// Cursor returns the cursor's byte offset.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Insert places s at the cursor and advances past it.
func (e *Editor) Insert(s string) {
	e.text = e.text[:e.cursor] + s + e.text[e.cursor:]
	e.cursor += len(s)
}

// DeleteBackward removes the cluster before the cursor. It reports false
// when the cursor is at the start of the buffer.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	prev := prevBoundary(e.text, e.cursor)
	e.text = e.text[:prev] + e.text[e.cursor:]
	e.cursor = prev
	return true
}

// MoveLeft moves the cursor one cluster left.
func (e *Editor) MoveLeft() {
	e.cursor = prevBoundary(e.text, e.cursor)
}

// MoveRight moves the cursor one cluster right.
func (e *Editor) MoveRight() {
	e.cursor = nextBoundary(e.text, e.cursor)
}

// MoveLineStart moves the cursor to the start of the current line.
func (e *Editor) MoveLineStart() {
	for e.cursor > 0 && e.text[e.cursor-1] != '\n' {
		e.cursor--
	}
}

// MoveLineEnd moves the cursor to the end of the current line.
func (e *Editor) MoveLineEnd() {
	for e.cursor < len(e.text) && e.text[e.cursor] != '\n' {
		e.cursor++
	}
}

// AtStart reports whether the cursor is at the start of the buffer.
func (e *Editor) AtStart() bool {
	return e.cursor == 0
}

// AtEnd reports whether the cursor is at the end of the buffer.
func (e *Editor) AtEnd() bool {
	return e.cursor == len(e.text)
}

// snapBoundary returns the nearest cluster boundary at or before at.
func snapBoundary(s string, at int) int {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ := g.Positions()
		if start == at {
			return at
		}
		if start > at {
			return last
		}
		last = start
	}
	if at >= len(s) {
		return len(s)
	}
	return last
}

// prevBoundary returns the cluster boundary before at, or 0.
func prevBoundary(s string, at int) int {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ := g.Positions()
		if start >= at {
			return last
		}
		last = start
	}
	return last
}

// nextBoundary returns the cluster boundary after at, or len(s).
func nextBoundary(s string, at int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, end := g.Positions()
		if start >= at {
			return end
		}
	}
	return len(s)
}
