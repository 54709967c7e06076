package core

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/textring/internal/buffer"
	"github.com/bethropolis/textring/internal/core/history"
	"github.com/bethropolis/textring/internal/layout"
	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/internal/storage"
)

// Status is the outcome of an undo or redo request.
type Status int

const (
	StatusOK Status = iota
	StatusNothingToUndo
	StatusNothingToRedo
)

func (s Status) String() string {
	switch s {
	case StatusNothingToUndo:
		return "Nothing to undo"
	case StatusNothingToRedo:
		return "Nothing to redo"
	default:
		return "OK"
	}
}

// --- Text operations ---

// InsertRune types r after the cursor. A carriage return is entered as a newline.
func (e *Editor) InsertRune(r rune) {
	e.do(func() {
		e.selection.Clear()
		if r == '\r' {
			r = '\n'
		}
		node := e.buffer.InsertAfterCursor(r)
		e.history.Record(history.Insert{Node: node})
		e.contentChanged()
	})
}

func (e *Editor) InsertNewLine() {
	e.InsertRune('\n')
}

// DeleteBackward removes the selection if there is one, otherwise the
// character under the cursor. It reports whether anything was removed.
// An anchored but empty selection is dropped as well.
func (e *Editor) DeleteBackward() bool {
	deleted := false
	e.do(func() {
		if e.selection.HasSelection() {
			deleted = e.deleteSelection()
			return
		}
		e.selection.Clear()
		rm, ok := e.buffer.DeleteAtCursor()
		if !ok {
			return
		}
		e.history.Record(history.Delete{Node: rm.Node, Char: rm.Char, Predecessor: rm.Predecessor})
		e.contentChanged()
		deleted = true
	})
	return deleted
}

// deleteSelection removes the selected run as one undoable step.
func (e *Editor) deleteSelection() bool {
	lo, hi, ok := e.orderedSelection()
	e.selection.Clear()
	if !ok {
		return false
	}

	n := utf8.RuneCountInString(e.buffer.Between(lo, hi))
	e.buffer.SetCursorToNode(hi)
	nodes := make([]history.Removed, n)
	for i := n - 1; i >= 0; i-- {
		rm, _ := e.buffer.DeleteAtCursor()
		nodes[i] = history.Removed{Node: rm.Node, Char: rm.Char}
	}
	e.history.Record(history.SequenceDelete{Nodes: nodes, Start: e.buffer.Cursor()})
	logger.DebugTagf("core", "Editor: Deleted %d selected characters", n)
	e.contentChanged()
	return true
}

// Paste inserts text after the cursor as a single undoable step. Carriage
// returns are folded the same way file loading folds them.
func (e *Editor) Paste(text string) bool {
	pasted := false
	e.do(func() {
		e.selection.Clear()
		var last buffer.NodeRef
		count := 0
		_ = storage.LoadFrom(strings.NewReader(text), func(r rune) {
			last = e.buffer.InsertAfterCursor(r)
			count++
		})
		if count == 0 {
			return
		}
		e.history.Record(history.PasteDelete{LastNode: last, Count: count})
		e.contentChanged()
		pasted = true
	})
	return pasted
}

// PasteClipboard pastes the clipboard contents. It reports false when the
// clipboard is empty.
func (e *Editor) PasteClipboard() bool {
	text, ok := e.clipboard.Paste()
	if !ok {
		logger.Debugf("Editor: Nothing on clipboard")
		return false
	}
	return e.Paste(text)
}

// --- History ---

// Undo reverts the most recent edit.
func (e *Editor) Undo() Status {
	status := StatusOK
	e.do(func() {
		e.selection.Clear()
		if err := e.history.Undo(); err != nil {
			if errors.Is(err, history.ErrNothingToUndo) {
				status = StatusNothingToUndo
				return
			}
			logger.Errorf("Editor: Undo failed: %v", err)
			return
		}
		e.contentChanged()
	})
	return status
}

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() Status {
	status := StatusOK
	e.do(func() {
		e.selection.Clear()
		if err := e.history.Redo(); err != nil {
			if errors.Is(err, history.ErrNothingToRedo) {
				status = StatusNothingToRedo
				return
			}
			logger.Errorf("Editor: Redo failed: %v", err)
			return
		}
		e.contentChanged()
	})
	return status
}

// --- Cursor movement ---
// Movement never touches the selection; callers extend or clear it.

func (e *Editor) MoveLeft() {
	e.do(func() {
		e.buffer.MoveCursor(buffer.Backward, true)
		e.cursorMoved()
	})
}

func (e *Editor) MoveRight() {
	e.do(func() {
		e.buffer.MoveCursor(buffer.Forward, true)
		e.cursorMoved()
	})
}

// MoveDocStart puts the cursor before the first character.
func (e *Editor) MoveDocStart() {
	e.do(func() {
		e.buffer.SetCursorToHead()
		e.cursorMoved()
	})
}

// MoveDocEnd puts the cursor after the last character.
func (e *Editor) MoveDocEnd() {
	e.do(func() {
		e.buffer.SetCursorToTail()
		e.cursorMoved()
	})
}

// MoveUp moves to the same column on the previous line, or to the start of
// the document from the first line.
func (e *Editor) MoveUp() {
	e.do(func() {
		layout.PrevLine(e.buffer, e.relayout())
		e.cursorMoved()
	})
}

// MoveDown moves to the same column on the next line, or to the end of the
// document from the last line.
func (e *Editor) MoveDown() {
	e.do(func() {
		layout.NextLine(e.buffer, e.relayout())
		e.cursorMoved()
	})
}

// JumpTo moves the cursor to the cell boundary nearest column x of line.
func (e *Editor) JumpTo(x, line int) {
	e.do(func() {
		layout.JumpTo(e.buffer, e.relayout(), x, line)
		e.cursorMoved()
	})
}

// PageMove moves the cursor up or down by one view height, keeping its column.
func (e *Editor) PageMove(deltaPages int) {
	e.do(func() {
		if e.viewHeight <= 0 {
			return
		}
		l := e.relayout()
		target := l.CursorLine + deltaPages*e.viewHeight
		if target < 1 {
			target = 1
		}
		if target > l.MaxLine {
			target = l.MaxLine
		}
		layout.JumpTo(e.buffer, l, l.CursorX, target)
		e.cursorMoved()
	})
}

// --- Selection ---

// StartSelection anchors a selection at the cursor unless one is active,
// then moves its end to the cursor.
func (e *Editor) StartSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.StartOrUpdate(e.buffer.Cursor())
}

// ExtendSelection moves the end of the active selection to the cursor.
func (e *Editor) ExtendSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.UpdateEnd(e.buffer.Cursor())
}

func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Clear()
}

func (e *Editor) HasSelection() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.HasSelection()
}

// orderedSelection returns the selection ends in document order.
func (e *Editor) orderedSelection() (lo, hi buffer.NodeRef, ok bool) {
	anchor, end, ok := e.selection.Bounds()
	if !ok {
		return buffer.NodeRef{}, buffer.NodeRef{}, false
	}
	l := e.relayout()
	if l.CellIndex(anchor) > l.CellIndex(end) {
		anchor, end = end, anchor
	}
	return anchor, end, true
}

// SelectionRange returns the selected cells of the current layout as the
// half-open range [start, end).
func (e *Editor) SelectionRange() (start, end int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lo, hi, ok := e.orderedSelection()
	if !ok {
		return 0, 0, false
	}
	l := e.relayout()
	return l.CellIndex(lo) + 1, l.CellIndex(hi) + 1, true
}

// SelectedText returns the selected characters.
func (e *Editor) SelectedText() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lo, hi, ok := e.orderedSelection()
	if !ok {
		return "", false
	}
	return e.buffer.Between(lo, hi), true
}

// CopySelection copies the selected text to the clipboard and clears the
// selection. It reports false when nothing is selected.
func (e *Editor) CopySelection() (bool, error) {
	text, ok := e.SelectedText()
	if !ok {
		return false, nil
	}
	err := e.clipboard.Copy(text)
	e.ClearSelection()
	return true, err
}

// CutSelection copies the selected text to the clipboard and deletes it as
// one undoable step. It reports false when nothing is selected.
func (e *Editor) CutSelection() (bool, error) {
	cut := false
	var err error
	e.do(func() {
		lo, hi, ok := e.orderedSelection()
		if !ok {
			return
		}
		err = e.clipboard.Copy(e.buffer.Between(lo, hi))
		cut = e.deleteSelection()
	})
	return cut, err
}
