package block

import "strings"

// Decode converts a block's raw content to its editable representation,
// stripping the delimiter and any type-specific framing. Decode is the
// inverse of Encode for every kind: Decode(Encode(kind, info, x)) == x.
func Decode(b Block) string {
	body := strings.TrimRight(b.Raw, "\n")

	switch b.Kind {
	case KindText:
		return decodeText(body)
	case KindCode:
		return decodeCode(body)
	case KindMath:
		return decodeMath(body)
	case KindCanvas:
		return decodeCanvas(body)
	default:
		return body
	}
}

// Encode converts editable content back to raw block text for the given
// kind, re-adding framing and the trailing delimiter. The info string is
// only meaningful for code blocks, where it preserves the language tag.
func Encode(kind Kind, info, editable string) string {
	switch kind {
	case KindText:
		return encodeText(editable) + Delimiter
	case KindCode:
		escaped := strings.ReplaceAll(editable, "`", "\\`")
		return "```" + info + "\n" + escaped + "\n```" + Delimiter
	case KindMath:
		escaped := strings.ReplaceAll(editable, "$", "\\$")
		return "$$\n" + escaped + "\n$$" + Delimiter
	case KindCanvas:
		return "![drawing](" + DrawingScheme + editable + ")" + Delimiter
	default:
		return editable + Delimiter
	}
}

func decodeText(body string) string {
	switch body {
	case Sentinel:
		return ""
	case escapedSentinel:
		return Sentinel
	}
	return body
}

func encodeText(editable string) string {
	switch editable {
	case "":
		return Sentinel
	case Sentinel:
		return escapedSentinel
	}
	return editable
}

func decodeCode(body string) string {
	// Drop the opening fence line, including any info string.
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		return ""
	}
	// Drop the closing fence.
	if strings.HasSuffix(body, "\n```") {
		body = body[:len(body)-len("\n```")]
	} else if body == "```" {
		body = ""
	}
	return strings.ReplaceAll(body, "\\`", "`")
}

func decodeMath(body string) string {
	body = strings.TrimPrefix(body, "$$")
	body = strings.TrimPrefix(body, "\n")
	if strings.HasSuffix(body, "$$") {
		body = body[:len(body)-2]
		body = strings.TrimSuffix(body, "\n")
	}
	return strings.ReplaceAll(body, "\\$", "$")
}

func decodeCanvas(body string) string {
	i := strings.Index(body, DrawingScheme)
	if i < 0 {
		return ""
	}
	payload := body[i+len(DrawingScheme):]
	if j := strings.LastIndexByte(payload, ')'); j >= 0 {
		payload = payload[:j]
	}
	return payload
}
