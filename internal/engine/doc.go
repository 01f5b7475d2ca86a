// Package engine implements the edit-operation state machine for the block
// editor: split, merge, content replacement, list continuation, undo, and
// focus navigation.
//
// Every operation is a total function of the canonical document plus a
// target block index, returning the new document and the focus state the UI
// should adopt. The document is replaced wholesale and re-partitioned on
// every operation; no operation mutates state in place, and illegal
// requests (merging into a fence, navigating past the bounds, undoing an
// empty history) degrade to silent no-ops. Out-of-range block indices
// panic: callers derive indices from the current partition, so a miss is a
// bug, not a user condition.
package engine
