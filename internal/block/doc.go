// Package block defines the block value type, the kind classifier, and the
// codec between stored ("raw") block text and its editable representation.
//
// A block is a contiguous, delimiter-terminated span of the canonical
// Markdown document. Its kind is a tagged variant over text, code, math, and
// canvas, produced exactly once by Classify; every consumer switches
// exhaustively over it rather than re-sniffing string prefixes.
//
// The codec maintains the round-trip invariant for every kind:
//
//	Decode(Encode(kind, info, x)) == x
//
// Two reserved forms exist: the "(empty)" sentinel keeps structurally blank
// blocks addressable, and an empty math body still encodes to three lines
// ("$$\n\n$$") so decode's framing stays valid.
package block
