package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/textring/internal/core"
	"github.com/bethropolis/textring/internal/input"
	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/plugins/wordcount"
)

// handleKey maps a key to an action and runs it.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	return a.executeAction(a.inputProcessor.ProcessEvent(ev))
}

// executeAction runs one action against the editor and reports whether
// the screen needs a redraw.
func (a *App) executeAction(ae input.ActionEvent) bool {
	if ae.Action != input.ActionQuit {
		a.forceQuitPending = false
	}

	if ae.Action.IsMovement() {
		if ae.Select {
			a.editor.StartSelection()
		} else {
			a.editor.ClearSelection()
		}
		a.move(ae.Action)
		if ae.Select {
			a.editor.ExtendSelection()
		}
		return true
	}

	switch ae.Action {
	case input.ActionQuit:
		if a.editor.IsModified() && !a.forceQuitPending {
			a.statusBar.SetTemporaryMessage("Unsaved changes! Press Esc again or Ctrl+Q to force quit.")
			a.forceQuitPending = true
			return true
		}
		a.requestQuit()
		return false

	case input.ActionForceQuit:
		a.requestQuit()
		return false

	case input.ActionSave:
		if err := a.editor.Save(""); err != nil {
			a.statusBar.SetTemporaryMessage("Save failed: %v", err)
			logger.Errorf("App: Save failed: %v", err)
		}

	case input.ActionInsertRune:
		a.editor.InsertRune(ae.Rune)
	case input.ActionInsertNewLine:
		a.editor.InsertNewLine()
	case input.ActionDeleteBackward:
		a.editor.DeleteBackward()

	case input.ActionUndo:
		if status := a.editor.Undo(); status != core.StatusOK {
			a.statusBar.SetTemporaryMessage("%s", status)
		}
	case input.ActionRedo:
		if status := a.editor.Redo(); status != core.StatusOK {
			a.statusBar.SetTemporaryMessage("%s", status)
		}

	case input.ActionCopy:
		copied, err := a.editor.CopySelection()
		switch {
		case err != nil:
			a.statusBar.SetTemporaryMessage("Copied to internal clipboard only: %v", err)
		case copied:
			a.statusBar.SetTemporaryMessage("Text copied to clipboard")
		default:
			a.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionCut:
		cut, err := a.editor.CutSelection()
		switch {
		case err != nil:
			a.statusBar.SetTemporaryMessage("Cut to internal clipboard only: %v", err)
		case !cut:
			a.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}
	case input.ActionPaste:
		if !a.editor.PasteClipboard() {
			a.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
		}

	case input.ActionWordCount:
		if err := a.commands.Run(wordcount.CommandName, nil); err != nil {
			a.statusBar.SetTemporaryMessage("%v", err)
		}

	default:
		logger.DebugTagf("app", "App: Unhandled key action %s", ae.Action)
		return false
	}
	return true
}

func (a *App) move(action input.Action) {
	switch action {
	case input.ActionMoveUp:
		a.editor.MoveUp()
	case input.ActionMoveDown:
		a.editor.MoveDown()
	case input.ActionMoveLeft:
		a.editor.MoveLeft()
	case input.ActionMoveRight:
		a.editor.MoveRight()
	case input.ActionMovePageUp:
		a.editor.PageMove(-1)
	case input.ActionMovePageDown:
		a.editor.PageMove(1)
	case input.ActionMoveDocStart:
		a.editor.MoveDocStart()
	case input.ActionMoveDocEnd:
		a.editor.MoveDocEnd()
	}
}

// handleMouse turns a left click into a jump plus a fresh selection anchor
// and a drag into a selection extension. The wheel moves the cursor.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.editor.MoveUp()
		return true
	case buttons&tcell.WheelDown != 0:
		a.editor.MoveDown()
		return true
	case buttons&tcell.Button1 == 0:
		a.dragging = false
		return false
	}

	if y >= a.editor.ViewHeight() {
		return false
	}
	viewY, viewX := a.editor.Viewport()
	a.editor.JumpTo(x+viewX, y+viewY+1)
	if a.dragging {
		a.editor.ExtendSelection()
		return true
	}
	a.dragging = true
	a.forceQuitPending = false
	a.editor.ClearSelection()
	a.editor.StartSelection()
	return true
}

// handlePaste brackets a terminal paste; keys in between are collected
// and inserted as one undoable step.
func (a *App) handlePaste(ev *tcell.EventPaste) bool {
	if ev.Start() {
		a.pasting = true
		a.pasteBuf = a.pasteBuf[:0]
		return false
	}
	a.pasting = false
	if len(a.pasteBuf) == 0 {
		return false
	}
	a.editor.Paste(string(a.pasteBuf))
	return true
}

func (a *App) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.pasteBuf = append(a.pasteBuf, ev.Rune())
	case tcell.KeyEnter:
		a.pasteBuf = append(a.pasteBuf, '\n')
	case tcell.KeyTab:
		a.pasteBuf = append(a.pasteBuf, '\t')
	}
}
