package render

import (
	"strings"
	"testing"

	"github.com/dshills/blockpad/internal/block"
)

func mkBlock(kind block.Kind, editable string) block.Block {
	raw := block.Encode(kind, "", editable)
	return block.New(0, len(raw), raw)
}

func TestPlainRenderText(t *testing.T) {
	r := NewPlain()
	got := r.Render(mkBlock(block.KindText, "hello *world*"), Options{})
	if got != "hello *world*" {
		t.Errorf("got %q", got)
	}
}

func TestPlainRenderMath(t *testing.T) {
	r := NewPlain()
	got := r.Render(mkBlock(block.KindMath, "a\nb"), Options{})
	if got != "$$ a b $$" {
		t.Errorf("got %q", got)
	}
}

func TestDisallowedKindRendersNothing(t *testing.T) {
	r := NewPlain()
	opts := Options{Allowed: map[block.Kind]bool{block.KindText: true}}
	if got := r.Render(mkBlock(block.KindCode, "x"), opts); got != "" {
		t.Errorf("disallowed code rendered %q", got)
	}
	if got := r.Render(mkBlock(block.KindText, "x"), opts); got != "x" {
		t.Errorf("allowed text rendered %q", got)
	}
}

func TestOverrides(t *testing.T) {
	r := NewPlain()
	opts := Options{Overrides: map[block.Kind]string{block.KindCanvas: "<sketch>"}}
	if got := r.Render(mkBlock(block.KindCanvas, "QQ=="), opts); got != "<sketch>" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteURL(t *testing.T) {
	r := NewPlain()
	opts := Options{RewriteURL: func(u string) string {
		return strings.Replace(u, "http://", "https://", 1)
	}}
	got := r.Render(mkBlock(block.KindText, "see [x](http://a.test/p) and [y](http://b.test)"), opts)
	want := "see [x](https://a.test/p) and [y](https://b.test)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
