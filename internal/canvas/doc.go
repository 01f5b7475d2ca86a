// Package canvas implements the drawing-block payload contract: an opaque
// base64 string carried in a drawing-scheme URL, wrapping a JSON stroke
// list. The editor core treats the payload as ordinary block content; this
// package is the boundary where the drawing subsystem reads and writes it.
package canvas
