package block

import "strings"

// Classify determines a block's kind from its raw content. First match wins:
// a triple-backtick fence is code, a $$ prefix is math, a single-paragraph
// image reference with a drawing-scheme URL is canvas, anything else is text.
// A fence indented four or more spaces is indented code in CommonMark terms
// and stays text. For code blocks the fence info string (language tag) is
// returned as well.
func Classify(raw string) (Kind, string) {
	content := strings.TrimLeft(raw, "\n")
	indent := len(content) - len(strings.TrimLeft(content, " "))
	content = content[indent:]

	if indent <= 3 {
		if strings.HasPrefix(content, "```") {
			return KindCode, fenceInfo(content)
		}
		if strings.HasPrefix(content, "$$") {
			return KindMath, ""
		}
	}
	if isDrawingRef(content) {
		return KindCanvas, ""
	}
	return KindText, ""
}

// fenceInfo extracts the info string from the opening fence line.
func fenceInfo(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "```"))
}

// isDrawingRef reports whether content is a single-line image reference
// whose URL carries the drawing scheme.
func isDrawingRef(content string) bool {
	line := strings.TrimRight(content, "\n")
	if strings.ContainsRune(line, '\n') {
		return false
	}
	if !strings.HasPrefix(line, "![") || !strings.HasSuffix(line, ")") {
		return false
	}
	open := strings.Index(line, "](")
	if open < 0 {
		return false
	}
	return strings.HasPrefix(line[open+2:], DrawingScheme)
}
