// Package document derives the editable block list from the canonical
// Markdown string and keeps the delimiter invariant honest.
//
// The canonical string is the single source of truth; blocks are a view,
// recomputed wholesale on every change. Re-partitioning is O(document size)
// per edit. That cost model is part of the contract and must not be
// "optimized" into incremental reparsing, which changes edge-case behavior.
package document
