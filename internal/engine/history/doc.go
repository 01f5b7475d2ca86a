// Package history keeps a small bounded stack of whole-document snapshots
// for undo. Snapshots are plain strings: the document is replaced wholesale
// on every committed operation, so there is nothing finer-grained to store.
package history
