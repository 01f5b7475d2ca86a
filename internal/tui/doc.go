// Package tui is the terminal frontend.
//
// The UI shows the document one block per section. While browsing, the
// arrow keys move a highlight between blocks and Enter starts editing
// the highlighted one. While editing, the focused block's raw content
// sits in a grapheme-aware Editor buffer and every change flows through
// the session; all other blocks stay rendered. Escape leaves editing,
// which also settles any deferred normalization.
package tui
