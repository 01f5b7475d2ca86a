package render

import (
	"strings"

	"github.com/dshills/blockpad/internal/block"
)

// Options configures a render call: which block kinds may render at all, an
// optional URL-rewrite hook applied to link and image targets, and per-kind
// display overrides.
type Options struct {
	// Allowed restricts renderable kinds. A nil map allows everything.
	Allowed map[block.Kind]bool
	// RewriteURL, when set, is applied to every URL in the output.
	RewriteURL func(string) string
	// Overrides replaces the rendered form of a kind wholesale, e.g. a
	// placeholder string for canvas blocks.
	Overrides map[block.Kind]string
}

// Renderer turns one block into display-ready text. Implementations must be
// pure functions of (block, options); the editor core makes no
// rendering-correctness guarantees and real frontends supply their own.
type Renderer interface {
	Render(b block.Block, opts Options) string
}

// Plain renders blocks as plain text for terminal display: block content
// for text and code, fenced math as-is, and a short placeholder for canvas
// blocks.
type Plain struct{}

// NewPlain creates the plain-text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render implements Renderer.
func (p *Plain) Render(b block.Block, opts Options) string {
	if opts.Allowed != nil && !opts.Allowed[b.Kind] {
		return ""
	}
	if override, ok := opts.Overrides[b.Kind]; ok {
		return override
	}

	switch b.Kind {
	case block.KindCode:
		return b.Content()
	case block.KindMath:
		return "$$ " + strings.ReplaceAll(b.Content(), "\n", " ") + " $$"
	case block.KindCanvas:
		url := block.DrawingScheme + b.Content()
		if opts.RewriteURL != nil {
			url = opts.RewriteURL(url)
		}
		return "[drawing " + url + "]"
	default:
		content := b.Content()
		if opts.RewriteURL != nil {
			content = rewriteLinks(content, opts.RewriteURL)
		}
		return content
	}
}

// rewriteLinks applies the hook to every "](url)" target in Markdown text.
func rewriteLinks(content string, rewrite func(string) string) string {
	var sb strings.Builder
	rest := content
	for {
		i := strings.Index(rest, "](")
		if i < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		j := strings.IndexByte(rest[i:], ')')
		if j < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		sb.WriteString(rest[:i+2])
		sb.WriteString(rewrite(rest[i+2 : i+j]))
		sb.WriteString(")")
		rest = rest[i+j+1:]
	}
}
