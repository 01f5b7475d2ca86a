package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/block"
	"github.com/dshills/blockpad/internal/canvas"
	"github.com/dshills/blockpad/internal/render"
)

// UI is the terminal frontend. It displays the session's blocks, keeps a
// grapheme-aware Editor for the focused block, and turns key events into
// session operations.
type UI struct {
	screen   tcell.Screen
	session  *app.Session
	renderer render.Renderer
	editor   *Editor
	logger   *app.Logger

	selected int // block highlighted while nothing is focused
	top      int // first visible display line
	status   string
}

// New creates a UI on a real terminal screen.
func New(session *app.Session, logger *app.Logger) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(session, logger, screen), nil
}

// NewWithScreen creates a UI on the given screen. Tests pass a
// tcell.SimulationScreen.
func NewWithScreen(session *app.Session, logger *app.Logger, screen tcell.Screen) *UI {
	if logger == nil {
		logger = app.NullLogger
	}
	return &UI{
		screen:   screen,
		session:  session,
		renderer: render.NewPlain(),
		editor:   &Editor{},
		logger:   logger.WithComponent("tui"),
	}
}

// Run initializes the screen and processes events until quit.
func (ui *UI) Run() error {
	if err := ui.screen.Init(); err != nil {
		return err
	}
	defer ui.screen.Fini()

	ui.draw()
	for {
		ev := ui.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			ui.screen.Sync()
		case *tcell.EventKey:
			if ui.HandleKey(e) {
				return nil
			}
			ui.SettlePending()
		}
		ui.draw()
	}
}

// SettlePending applies any deferred normalization once the current input
// event has been fully handled, then realigns the editor buffer if the
// focused block's content moved under it.
func (ui *UI) SettlePending() {
	before := ui.session.Doc()
	ui.session.Settle()
	if ui.session.Doc() == before {
		return
	}
	ui.syncFromSession()
}

// HandleKey processes one key event. It reports true when the UI should
// exit.
func (ui *UI) HandleKey(ev *tcell.EventKey) bool {
	action, r := Translate(ev)

	switch action {
	case ActionQuit:
		return true
	case ActionSave:
		ui.save()
		return false
	case ActionUndo:
		ui.session.Undo()
		ui.syncFromSession()
		return false
	}

	if ui.session.Focus().Editing() {
		ui.handleEditing(action, r)
	} else {
		ui.handleBrowsing(action)
	}
	return false
}

// handleBrowsing processes keys while no block is focused.
func (ui *UI) handleBrowsing(action Action) {
	n := len(ui.session.Blocks())
	switch action {
	case ActionUp:
		if ui.selected > 0 {
			ui.selected--
		}
	case ActionDown:
		if ui.selected < n-1 {
			ui.selected++
		}
	case ActionEnter:
		ui.session.FocusBlock(ui.selected, 0)
		ui.syncFromSession()
	}
}

// handleEditing processes keys while a block is focused.
func (ui *UI) handleEditing(action Action, r rune) {
	f := ui.session.Focus()

	switch action {
	case ActionBlur:
		ui.session.Blur()
		ui.syncFromSession()
	case ActionInsertRune:
		ui.editor.Insert(string(r))
		ui.pushContent(f.Block)
	case ActionBackspace:
		// Structural backspace first: marker-only list lines, empty-block
		// deletion, and merges all live in the session. Only when none of
		// those apply does backspace delete a character.
		before := ui.session.Doc()
		ui.session.Backspace(f.Block, ui.editor.Cursor())
		if ui.session.Doc() != before {
			ui.syncFromSession()
			return
		}
		if ui.editor.DeleteBackward() {
			ui.pushContent(f.Block)
		}
	case ActionEnter:
		ui.session.Enter(f.Block, ui.editor.Cursor())
		ui.syncFromSession()
	case ActionIndent:
		ui.session.Indent(f.Block, ui.editor.Cursor())
		ui.syncFromSession()
	case ActionOutdent:
		ui.session.Outdent(f.Block, ui.editor.Cursor())
		ui.syncFromSession()
	case ActionLeft:
		if ui.editor.AtStart() {
			ui.session.FocusPrevious()
			ui.syncFromSession()
			return
		}
		ui.editor.MoveLeft()
		ui.session.FocusBlock(f.Block, ui.editor.Cursor())
	case ActionRight:
		if ui.editor.AtEnd() {
			ui.session.FocusNext()
			ui.syncFromSession()
			return
		}
		ui.editor.MoveRight()
		ui.session.FocusBlock(f.Block, ui.editor.Cursor())
	case ActionHome:
		ui.editor.MoveLineStart()
		ui.session.FocusBlock(f.Block, ui.editor.Cursor())
	case ActionEnd:
		ui.editor.MoveLineEnd()
		ui.session.FocusBlock(f.Block, ui.editor.Cursor())
	case ActionUp:
		if ui.editor.AtStart() {
			ui.session.FocusPrevious()
			ui.syncFromSession()
		}
	case ActionDown:
		if ui.editor.AtEnd() {
			ui.session.FocusNext()
			ui.syncFromSession()
		}
	}
}

// pushContent installs the editor buffer as the focused block's content.
// When the edit spawns a new block (a completed fence) the focus moves and
// the editor resyncs from the session; otherwise the session's cursor
// follows the editor's.
func (ui *UI) pushContent(i int) {
	ui.session.SetContent(i, ui.editor.Text())
	if f := ui.session.Focus(); f.Block != i {
		ui.syncFromSession()
		return
	}
	ui.session.FocusBlock(i, ui.editor.Cursor())
}

// syncFromSession reloads the editor buffer from the session's focus.
func (ui *UI) syncFromSession() {
	f := ui.session.Focus()
	if !f.Editing() {
		n := len(ui.session.Blocks())
		if ui.selected >= n {
			ui.selected = n - 1
		}
		if ui.selected < 0 {
			ui.selected = 0
		}
		return
	}

	blocks := ui.session.Blocks()
	if f.Block >= len(blocks) {
		return
	}
	ui.editor.Load(blocks[f.Block].Content(), f.Cursor)
	ui.selected = f.Block
}

// Editor exposes the focused-block buffer, for tests.
func (ui *UI) Editor() *Editor {
	return ui.editor
}

// Selected returns the highlighted block index while browsing.
func (ui *UI) Selected() int {
	return ui.selected
}

func (ui *UI) save() {
	id, err := ui.session.Save("")
	if err != nil {
		ui.status = fmt.Sprintf("save failed: %v", err)
		ui.logger.Error("save failed: %v", err)
		return
	}
	ui.status = "saved " + id[:minInt(8, len(id))]
}

// displayLine is one screen row of prepared output.
type displayLine struct {
	text   string
	style  tcell.Style
	cursor int // byte offset of the cursor in text, -1 if none
}

// draw repaints the whole screen.
func (ui *UI) draw() {
	ui.screen.Clear()
	width, height := ui.screen.Size()
	if height < 2 {
		ui.screen.Show()
		return
	}

	lines := ui.buildLines()
	body := height - 1

	// Keep the cursor or selected block in view.
	target := 0
	for i, ln := range lines {
		if ln.cursor >= 0 {
			target = i
			break
		}
	}
	if target < ui.top {
		ui.top = target
	}
	if target >= ui.top+body {
		ui.top = target - body + 1
	}
	if ui.top < 0 {
		ui.top = 0
	}

	ui.screen.HideCursor()
	for row := 0; row < body; row++ {
		idx := ui.top + row
		if idx >= len(lines) {
			break
		}
		ln := lines[idx]
		putString(ui.screen, 0, row, ln.style, ln.text)
		if ln.cursor >= 0 {
			ui.screen.ShowCursor(uniseg.StringWidth(ln.text[:ln.cursor]), row)
		}
	}

	putString(ui.screen, 0, height-1, statusStyle, ui.statusLine(width))
	ui.screen.Show()
}

// buildLines flattens the document into display lines.
func (ui *UI) buildLines() []displayLine {
	blocks := ui.session.Blocks()
	f := ui.session.Focus()

	var lines []displayLine
	for i, b := range blocks {
		switch {
		case f.Editing() && i == f.Block:
			lines = append(lines, editorLines(ui.editor, focusedStyle)...)
		default:
			style := blockStyle(b.Kind)
			if !f.Editing() && i == ui.selected {
				style = selectedStyle
			}
			text := ui.renderer.Render(b, render.Options{
				Overrides: map[block.Kind]string{
					block.KindCanvas: canvasLabel(b),
				},
			})
			for _, ln := range strings.Split(text, "\n") {
				lines = append(lines, displayLine{text: ln, style: style, cursor: -1})
			}
		}
		lines = append(lines, displayLine{text: "", style: tcell.StyleDefault, cursor: -1})
	}
	return lines
}

// editorLines splits the editor buffer into display lines, marking the one
// holding the cursor.
func editorLines(e *Editor, style tcell.Style) []displayLine {
	text := e.Text()
	cursor := e.Cursor()

	var lines []displayLine
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		var line string
		if end < 0 {
			line = text[start:]
		} else {
			line = text[start : start+end]
		}

		dl := displayLine{text: line, style: style, cursor: -1}
		if cursor >= start && cursor <= start+len(line) {
			dl.cursor = cursor - start
			cursor = -1 // only mark once
		}
		lines = append(lines, dl)

		if end < 0 {
			return lines
		}
		start += end + 1
	}
}

func (ui *UI) statusLine(width int) string {
	path := ui.session.Path()
	if path == "" {
		path = "[no file]"
	}
	marker := ""
	if ui.session.Dirty() {
		marker = " *"
	}
	mode := "browse"
	if ui.session.Focus().Editing() {
		mode = "edit"
	}

	line := fmt.Sprintf(" %s%s  (%s)  %s", path, marker, mode, ui.status)
	if uniseg.StringWidth(line) > width && width > 0 {
		line = line[:width]
	}
	return line
}

// putString writes s starting at (x, y), advancing by display width.
func putString(s tcell.Screen, x, y int, style tcell.Style, text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Styles used by the block view.
var (
	focusedStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	selectedStyle = tcell.StyleDefault.Reverse(true)
	statusStyle   = tcell.StyleDefault.Reverse(true).Dim(true)
)

// canvasLabel summarizes a drawing block without rendering it.
func canvasLabel(b block.Block) string {
	strokes, err := canvas.Get(b.Content())
	if err != nil {
		return "[drawing: unreadable]"
	}
	return fmt.Sprintf("[drawing: %d strokes]", len(strokes))
}

// blockStyle returns the display style for an unfocused block.
func blockStyle(k block.Kind) tcell.Style {
	switch k {
	case block.KindCode:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case block.KindMath:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case block.KindCanvas:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault
	}
}
