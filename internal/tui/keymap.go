package tui

import "github.com/gdamore/tcell/v2"

// Action is an editor command produced by the keymap.
type Action int

// Actions the keymap can produce.
const (
	ActionNone Action = iota
	ActionQuit
	ActionSave
	ActionUndo
	ActionBlur
	ActionEnter
	ActionBackspace
	ActionIndent
	ActionOutdent
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionHome
	ActionEnd
	ActionInsertRune
)

// Translate maps a key event to an action. For ActionInsertRune the
// second return value is the rune to insert.
func Translate(ev *tcell.EventKey) (Action, rune) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return ActionQuit, 0
	case tcell.KeyCtrlS:
		return ActionSave, 0
	case tcell.KeyCtrlZ:
		return ActionUndo, 0
	case tcell.KeyEscape:
		return ActionBlur, 0
	case tcell.KeyEnter:
		return ActionEnter, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionBackspace, 0
	case tcell.KeyTab:
		return ActionIndent, 0
	case tcell.KeyBacktab:
		return ActionOutdent, 0
	case tcell.KeyLeft:
		return ActionLeft, 0
	case tcell.KeyRight:
		return ActionRight, 0
	case tcell.KeyUp:
		return ActionUp, 0
	case tcell.KeyDown:
		return ActionDown, 0
	case tcell.KeyHome:
		return ActionHome, 0
	case tcell.KeyEnd:
		return ActionEnd, 0
	case tcell.KeyRune:
		return ActionInsertRune, ev.Rune()
	default:
		return ActionNone, 0
	}
}
