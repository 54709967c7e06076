// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown   Action = iota
	ActionQuit             // quits unless there are unsaved changes
	ActionForceQuit        // quits without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveDocStart
	ActionMoveDocEnd

	// --- Text Manipulation ---
	ActionInsertRune // carries Rune
	ActionInsertNewLine
	ActionDeleteBackward
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	// --- Plugins ---
	ActionWordCount
)

var actionNames = map[Action]string{
	ActionUnknown:        "unknown",
	ActionQuit:           "quit",
	ActionForceQuit:      "force-quit",
	ActionSave:           "save",
	ActionMoveUp:         "move-up",
	ActionMoveDown:       "move-down",
	ActionMoveLeft:       "move-left",
	ActionMoveRight:      "move-right",
	ActionMovePageUp:     "page-up",
	ActionMovePageDown:   "page-down",
	ActionMoveDocStart:   "doc-start",
	ActionMoveDocEnd:     "doc-end",
	ActionInsertRune:     "insert-rune",
	ActionInsertNewLine:  "insert-newline",
	ActionDeleteBackward: "delete-backward",
	ActionUndo:           "undo",
	ActionRedo:           "redo",
	ActionCopy:           "copy",
	ActionCut:            "cut",
	ActionPaste:          "paste",
	ActionWordCount:      "word-count",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsMovement reports whether a is a cursor movement, which may extend a selection.
func (a Action) IsMovement() bool {
	return a >= ActionMoveUp && a <= ActionMoveDocEnd
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Select bool // movement with Shift held extends the selection
}
