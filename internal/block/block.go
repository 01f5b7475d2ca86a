package block

// Sentinel is the reserved placeholder for a structurally blank block.
// Blank Markdown collapses on parse, so an empty block needs an explicit
// token to stay addressable.
const Sentinel = "(empty)"

// escapedSentinel is what a text block stores when its real content is
// exactly the sentinel string.
const escapedSentinel = `\(empty)`

// Delimiter is the two trailing newlines every normalized block ends with.
const Delimiter = "\n\n"

// DrawingScheme is the reserved URL prefix marking an embedded drawing.
const DrawingScheme = "drawing://"

// Kind identifies the structural type of a block.
type Kind int

const (
	// KindText is an ordinary Markdown block (paragraph, heading, list, ...).
	KindText Kind = iota
	// KindCode is a triple-backtick fenced code block.
	KindCode
	// KindMath is a $$-fenced display math block.
	KindMath
	// KindCanvas is an embedded drawing carried as an image reference
	// with a drawing-scheme URL.
	KindCanvas
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	case KindMath:
		return "math"
	case KindCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// Block is one contiguous, delimiter-terminated span of the document.
// Blocks are derived from the canonical string on every partition and are
// never persisted independently.
type Block struct {
	// Start is the byte offset of the block in the document.
	Start int
	// End is the byte offset one past the block (start of the next block).
	End int
	// Raw is the block's source text including its trailing delimiter.
	Raw string
	// Kind is the block's structural type, assigned once by the classifier.
	Kind Kind
	// Info is the fence info string (language tag) for code blocks.
	Info string
}

// New derives a block from a span of the document, classifying it exactly
// once.
func New(start, end int, raw string) Block {
	kind, info := Classify(raw)
	return Block{
		Start: start,
		End:   end,
		Raw:   raw,
		Kind:  kind,
		Info:  info,
	}
}

// Content returns the block's editable content: raw text with the delimiter
// and type-specific framing stripped.
func (b Block) Content() string {
	return Decode(b)
}
