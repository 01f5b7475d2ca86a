package parser

// Node is one top-level document element with its [Start, End) source span.
type Node struct {
	// Start is the byte offset of the element's first line.
	Start int
	// End is the byte offset just past the element's last captured segment.
	End int
}

// Parser produces the ordered top-level nodes of a Markdown document.
// Elements the underlying parser cannot attribute to a source span are
// omitted from the result.
type Parser interface {
	Parse(source string) []Node
}
