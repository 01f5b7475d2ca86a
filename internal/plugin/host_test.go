package plugin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFiltersTransformText(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.DoString(`
blockpad.on_load(function(text) return text .. "!" end)
blockpad.on_save(function(text) return "saved:" .. text end)
`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if got := h.RunOnLoad("hello"); got != "hello!" {
		t.Errorf("RunOnLoad = %q, want %q", got, "hello!")
	}
	if got := h.RunOnSave("hello"); got != "saved:hello" {
		t.Errorf("RunOnSave = %q, want %q", got, "saved:hello")
	}
}

func TestFiltersChainInOrder(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.DoString(`
blockpad.on_load(function(text) return text .. "a" end)
blockpad.on_load(function(text) return text .. "b" end)
`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := h.RunOnLoad("x"); got != "xab" {
		t.Errorf("chained filters = %q, want xab", got)
	}
}

func TestFailingFilterIsSkipped(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.DoString(`
blockpad.on_load(function(text) error("boom") end)
blockpad.on_load(function(text) return text .. "ok" end)
`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := h.RunOnLoad("x"); got != "xok" {
		t.Errorf("got %q, want the failing filter skipped", got)
	}
}

func TestNonStringReturnIsIgnored(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.DoString(`blockpad.on_save(function(text) return 42 end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := h.RunOnSave("keep"); got != "keep" {
		t.Errorf("got %q, want original text", got)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	script := `blockpad.on_load(function(text) return text .. "+dir" end)`
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-lua files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHost()
	defer h.Close()
	if err := h.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	loads, saves := h.FilterCount()
	if loads != 1 || saves != 0 {
		t.Errorf("filter count = %d/%d, want 1/0", loads, saves)
	}
	if got := h.RunOnLoad("x"); got != "x+dir" {
		t.Errorf("got %q", got)
	}
}

func TestLoadDirMissingIsNoOp(t *testing.T) {
	h := NewHost()
	defer h.Close()
	if err := h.LoadDir(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
}

func TestLoadDirCollectsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("this is not lua ("), 0o644); err != nil {
		t.Fatal(err)
	}
	good := `blockpad.on_save(function(text) return text end)`
	if err := os.WriteFile(filepath.Join(dir, "good.lua"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHost()
	defer h.Close()
	if err := h.LoadDir(dir); err == nil {
		t.Error("expected an error for the bad script")
	}
	_, saves := h.FilterCount()
	if saves != 1 {
		t.Errorf("good script should still load, saves = %d", saves)
	}
}
