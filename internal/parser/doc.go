// Package parser wraps the external Markdown parser behind a small span
// interface: Parse returns the ordered top-level elements of a document,
// each with a [start, end) byte span into the source.
//
// The document model only consumes spans; the parse tree itself never
// crosses this boundary. Elements the parser cannot tie to a source span
// are dropped, which the partitioning layer treats as ordinary inter-block
// whitespace.
package parser
