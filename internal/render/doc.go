// Package render defines the display collaborator the editor hands
// unfocused blocks to. Rendering is outside the core's guarantees; the
// interface exists so frontends can swap in a real Markdown renderer while
// the bundled plain-text implementation keeps the terminal UI useful.
package render
