// Package focus tracks which block is being edited and where the cursor
// should land. Every edit operation returns a fresh State alongside the new
// document; nothing here is derived from the document itself, so the state
// is recomputed, never patched.
package focus
