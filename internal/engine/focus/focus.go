package focus

// State identifies the block being edited and the intended cursor offset
// within its editable content. A Block of -1 means no block is focused.
// State is a value: operations return a new State rather than mutating one
// in place.
type State struct {
	Block  int
	Cursor int
}

// None returns the unfocused state.
func None() State {
	return State{Block: -1}
}

// At returns a state focused on the given block at the given cursor offset.
func At(blockIndex, cursor int) State {
	return State{Block: blockIndex, Cursor: cursor}
}

// Editing reports whether any block is focused.
func (s State) Editing() bool {
	return s.Block >= 0
}

// Clamp bounds the state to a document of n blocks and a focused content
// length of max. An out-of-range block clears focus entirely.
func (s State) Clamp(n, max int) State {
	if s.Block < 0 || s.Block >= n {
		return None()
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > max {
		s.Cursor = max
	}
	return s
}

// Controller tracks the live focus state for one open document.
type Controller struct {
	current State
}

// NewController creates a controller with nothing focused.
func NewController() *Controller {
	return &Controller{current: None()}
}

// Current returns the live state.
func (c *Controller) Current() State {
	return c.current
}

// Set replaces the live state.
func (c *Controller) Set(s State) {
	c.current = s
}

// Clear removes focus.
func (c *Controller) Clear() {
	c.current = None()
}
