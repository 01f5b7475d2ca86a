package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/engine/focus"
	"github.com/dshills/blockpad/internal/storage"
)

func newTestUI(t *testing.T, doc string) (*UI, *app.Session) {
	t.Helper()

	store := storage.NewLocal(t.TempDir())
	if _, err := store.Save("doc.md", doc, ""); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	session, err := app.NewSession(app.Options{Store: store})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(session.Close)
	if err := session.Open("doc.md"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	return NewWithScreen(session, nil, tcell.NewSimulationScreen("UTF-8")), session
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"ctrl-q quits", key(tcell.KeyCtrlQ), ActionQuit},
		{"ctrl-c quits", key(tcell.KeyCtrlC), ActionQuit},
		{"ctrl-s saves", key(tcell.KeyCtrlS), ActionSave},
		{"ctrl-z undoes", key(tcell.KeyCtrlZ), ActionUndo},
		{"escape blurs", key(tcell.KeyEscape), ActionBlur},
		{"enter", key(tcell.KeyEnter), ActionEnter},
		{"backspace", key(tcell.KeyBackspace2), ActionBackspace},
		{"tab indents", key(tcell.KeyTab), ActionIndent},
		{"backtab outdents", key(tcell.KeyBacktab), ActionOutdent},
		{"f1 ignored", key(tcell.KeyF1), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Translate(tt.ev)
			if got != tt.want {
				t.Errorf("Translate() = %v, want %v", got, tt.want)
			}
		})
	}

	if got, r := Translate(runeKey('x')); got != ActionInsertRune || r != 'x' {
		t.Errorf("Translate(rune) = %v, %q", got, r)
	}
}

func TestBrowseAndFocus(t *testing.T) {
	ui, session := newTestUI(t, "One\n\nTwo\n\nThree\n\n")

	ui.HandleKey(key(tcell.KeyDown))
	ui.HandleKey(key(tcell.KeyDown))
	if ui.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", ui.Selected())
	}
	ui.HandleKey(key(tcell.KeyDown))
	if ui.Selected() != 2 {
		t.Errorf("selection should stop at the last block, got %d", ui.Selected())
	}
	ui.HandleKey(key(tcell.KeyUp))

	ui.HandleKey(key(tcell.KeyEnter))
	if got := session.Focus(); got != focus.At(1, 0) {
		t.Errorf("Focus() = %+v, want %+v", got, focus.At(1, 0))
	}
	if ui.Editor().Text() != "Two" {
		t.Errorf("editor text = %q, want %q", ui.Editor().Text(), "Two")
	}
}

func TestTypingUpdatesDocument(t *testing.T) {
	ui, session := newTestUI(t, "Hi\n\n")

	ui.HandleKey(key(tcell.KeyEnter)) // focus block 0
	ui.HandleKey(key(tcell.KeyEnd))
	ui.HandleKey(runeKey('!'))

	if got := session.Doc(); got != "Hi!\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "Hi!\n\n")
	}
	if got := session.Focus(); got != focus.At(0, 3) {
		t.Errorf("Focus() = %+v, want %+v", got, focus.At(0, 3))
	}
}

func TestEnterSplitsFocusedBlock(t *testing.T) {
	ui, session := newTestUI(t, "Hello world\n\n")

	ui.HandleKey(key(tcell.KeyEnter)) // focus block 0
	for i := 0; i < 5; i++ {
		ui.HandleKey(key(tcell.KeyRight))
	}
	ui.HandleKey(key(tcell.KeyEnter)) // split at 5

	if got := session.Doc(); got != "Hello\n\n world\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "Hello\n\n world\n\n")
	}
	if ui.Editor().Text() != " world" {
		t.Errorf("editor text = %q, want %q", ui.Editor().Text(), " world")
	}
}

func TestEnterContinuesList(t *testing.T) {
	ui, session := newTestUI(t, "- item\n\n")

	ui.HandleKey(key(tcell.KeyEnter)) // focus
	ui.HandleKey(key(tcell.KeyEnd))
	ui.HandleKey(key(tcell.KeyEnter)) // new list line

	if got := session.Doc(); got != "- item\n- \n\n" {
		t.Errorf("Doc() = %q, want %q", got, "- item\n- \n\n")
	}
	if ui.Editor().Cursor() != len("- item\n- ") {
		t.Errorf("cursor = %d, want %d", ui.Editor().Cursor(), len("- item\n- "))
	}
}

func TestBackspaceRemovesEmptyListItem(t *testing.T) {
	ui, session := newTestUI(t, "- item\n- \n\n")

	ui.HandleKey(key(tcell.KeyEnter)) // focus block 0
	ui.HandleKey(key(tcell.KeyDown))  // cursor stays: not at end
	for !ui.Editor().AtEnd() {
		ui.HandleKey(key(tcell.KeyRight))
	}
	ui.HandleKey(key(tcell.KeyBackspace2))

	if got := session.Doc(); got != "- item\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "- item\n\n")
	}
	if ui.Editor().Text() != "- item" || ui.Editor().Cursor() != 6 {
		t.Errorf("editor %q cursor %d, want %q cursor 6", ui.Editor().Text(), ui.Editor().Cursor(), "- item")
	}
}

func TestBackspaceDeletesCharacter(t *testing.T) {
	ui, session := newTestUI(t, "ab\n\n")

	ui.HandleKey(key(tcell.KeyEnter))
	ui.HandleKey(key(tcell.KeyRight))
	ui.HandleKey(key(tcell.KeyBackspace2))

	if got := session.Doc(); got != "b\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "b\n\n")
	}
	if ui.Editor().Text() != "b" || ui.Editor().Cursor() != 0 {
		t.Errorf("editor %q cursor %d, want %q cursor 0", ui.Editor().Text(), ui.Editor().Cursor(), "b")
	}
}

func TestBackspaceAtStartMerges(t *testing.T) {
	ui, session := newTestUI(t, "A\n\nB\n\n")

	ui.HandleKey(key(tcell.KeyDown))
	ui.HandleKey(key(tcell.KeyEnter)) // focus block 1, cursor 0
	ui.HandleKey(key(tcell.KeyBackspace2))

	if got := session.Doc(); got != "AB\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "AB\n\n")
	}
	if got := session.Focus(); got != focus.At(0, 1) {
		t.Errorf("Focus() = %+v, want %+v", got, focus.At(0, 1))
	}
	if ui.Editor().Text() != "AB" {
		t.Errorf("editor text = %q, want %q", ui.Editor().Text(), "AB")
	}
}

func TestEscapeBlursAndSettles(t *testing.T) {
	ui, session := newTestUI(t, "Hi\n\n")

	ui.HandleKey(key(tcell.KeyEnter))
	ui.HandleKey(key(tcell.KeyEscape))

	if session.Focus().Editing() {
		t.Error("focus should be cleared after Escape")
	}
}

func TestCtrlZUndoes(t *testing.T) {
	ui, session := newTestUI(t, "Hi\n\n")

	ui.HandleKey(key(tcell.KeyEnter))
	ui.HandleKey(key(tcell.KeyEnd))
	ui.HandleKey(runeKey('!'))
	ui.HandleKey(key(tcell.KeyCtrlZ))

	if got := session.Doc(); got != "Hi\n\n" {
		t.Errorf("Doc() = %q, want %q", got, "Hi\n\n")
	}
}

func TestQuitKey(t *testing.T) {
	ui, _ := newTestUI(t, "Hi\n\n")

	if !ui.HandleKey(key(tcell.KeyCtrlQ)) {
		t.Error("HandleKey(ctrl-q) = false, want true")
	}
	if ui.HandleKey(runeKey('a')) {
		t.Error("HandleKey(rune) = true, want false")
	}
}
