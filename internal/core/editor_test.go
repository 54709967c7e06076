package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/types"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	return NewEditor(Options{TabWidth: 4, WrapWidth: -1})
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.InsertRune(r)
	}
}

func TestTypingAndUndo(t *testing.T) {
	e := newTestEditor(t)

	typeText(e, "Hi")
	require.Equal(t, "Hi", e.Text())
	assert.True(t, e.IsModified())

	require.True(t, e.DeleteBackward())
	assert.Equal(t, "H", e.Text())

	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, "Hi", e.Text())
	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, "H", e.Text())
	assert.Equal(t, StatusOK, e.Redo())
	assert.Equal(t, "Hi", e.Text())
}

func TestUndoRedoStatus(t *testing.T) {
	e := newTestEditor(t)

	assert.Equal(t, StatusNothingToUndo, e.Undo())
	assert.Equal(t, StatusNothingToRedo, e.Redo())
	assert.Equal(t, "Nothing to undo", StatusNothingToUndo.String())
	assert.False(t, e.IsModified(), "an empty undo changes nothing")
}

func TestDeleteBackwardAtStart(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "ab")
	e.MoveDocStart()

	assert.False(t, e.DeleteBackward())
	assert.Equal(t, "ab", e.Text())
	assert.False(t, e.CanRedo())
}

func TestCarriageReturnTypesNewline(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "a\rb")
	assert.Equal(t, "a\nb", e.Text())
	assert.Equal(t, types.Position{Line: 2, Col: 1}, e.GetCursor())
}

func TestPasteIsOneStep(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "xy")
	e.MoveLeft()

	require.True(t, e.Paste("one\r\ntwo"))
	assert.Equal(t, "xone\ntwoy", e.Text())
	assert.Equal(t, types.Position{Line: 2, Col: 3}, e.GetCursor())

	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, "xy", e.Text())
	assert.Equal(t, StatusOK, e.Redo())
	assert.Equal(t, "xone\ntwoy", e.Text())

	assert.False(t, e.Paste(""))
}

func TestMovement(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "abc\nde\nfghi")

	assert.Equal(t, types.Position{Line: 3, Col: 4}, e.GetCursor())

	e.MoveUp()
	assert.Equal(t, types.Position{Line: 2, Col: 2}, e.GetCursor())
	e.MoveUp()
	assert.Equal(t, types.Position{Line: 1, Col: 2}, e.GetCursor())
	e.MoveUp()
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.GetCursor(), "first line goes to document start")

	e.MoveDown()
	assert.Equal(t, types.Position{Line: 2, Col: 0}, e.GetCursor())

	e.MoveRight()
	e.MoveRight()
	e.MoveRight()
	assert.Equal(t, types.Position{Line: 3, Col: 0}, e.GetCursor(), "right steps across the newline")

	e.MoveDocEnd()
	e.MoveRight()
	assert.Equal(t, types.Position{Line: 3, Col: 4}, e.GetCursor())
	e.MoveDown()
	assert.Equal(t, types.Position{Line: 3, Col: 4}, e.GetCursor())

	e.MoveDocStart()
	e.MoveLeft()
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.GetCursor())
}

func TestJumpTo(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "hello\n\nworld")

	e.JumpTo(3, 1)
	assert.Equal(t, types.Position{Line: 1, Col: 3}, e.GetCursor())

	e.JumpTo(10, 2)
	assert.Equal(t, types.Position{Line: 2, Col: 0}, e.GetCursor())

	e.JumpTo(0, 99)
	assert.Equal(t, types.Position{Line: 3, Col: 5}, e.GetCursor())
}

func TestSelectionCopyPaste(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "hello world")

	e.JumpTo(6, 1)
	e.StartSelection()
	e.MoveDocEnd()
	e.ExtendSelection()

	text, ok := e.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "world", text)

	start, end, ok := e.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 6, start)
	assert.Equal(t, 11, end)

	copied, err := e.CopySelection()
	require.NoError(t, err)
	assert.True(t, copied)
	assert.False(t, e.HasSelection())

	e.MoveDocStart()
	require.True(t, e.PasteClipboard())
	assert.Equal(t, "worldhello world", e.Text())
}

func TestBackwardSelection(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "abcdef")

	e.StartSelection()
	e.JumpTo(2, 1)
	e.ExtendSelection()

	text, ok := e.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "cdef", text, "a selection dragged backward still reads in document order")
}

func TestDeleteSelectionUndo(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "abcdef")

	e.JumpTo(1, 1)
	e.StartSelection()
	e.JumpTo(4, 1)
	e.ExtendSelection()

	require.True(t, e.DeleteBackward())
	assert.Equal(t, "aef", e.Text())
	assert.Equal(t, types.Position{Line: 1, Col: 1}, e.GetCursor())

	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, "abcdef", e.Text())
	assert.Equal(t, StatusOK, e.Redo())
	assert.Equal(t, "aef", e.Text())
}

func TestEditsClearSelection(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "abc")
	e.MoveDocStart()
	e.StartSelection()
	e.MoveDocEnd()
	e.ExtendSelection()
	require.True(t, e.HasSelection())

	e.InsertRune('x')
	assert.False(t, e.HasSelection())

	_, err := e.CopySelection()
	assert.NoError(t, err)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("A\r\nB"), 0644))

	e := newTestEditor(t)
	mgr := event.NewManager()
	var seen []event.Type
	for _, typ := range []event.Type{event.TypeBufferLoaded, event.TypeBufferSaved, event.TypeBufferModified} {
		mgr.Subscribe(typ, func(ev event.Event) bool {
			seen = append(seen, ev.Type)
			return false
		})
	}
	e.SetEventManager(mgr)

	require.NoError(t, e.Load(path))
	assert.Equal(t, "A\nB", e.Text())
	assert.Equal(t, path, e.FilePath())
	assert.False(t, e.IsModified())
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.GetCursor())
	assert.Equal(t, 2, e.LineCount())

	e.MoveDocEnd()
	e.InsertRune('!')
	assert.True(t, e.IsModified())

	require.NoError(t, e.Save(""))
	assert.False(t, e.IsModified())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\nB!", string(data))

	assert.Equal(t, []event.Type{event.TypeBufferLoaded, event.TypeBufferModified, event.TypeBufferSaved}, seen)
}

func TestLoadResetsHistory(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "old")

	path := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, e.Load(path))
	assert.Equal(t, "", e.Text())
	assert.Equal(t, StatusNothingToUndo, e.Undo())

	_, err := os.Stat(path)
	assert.NoError(t, err, "loading a missing file creates it")
}

func TestLoadDirectoryKeepsDocument(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "keep")

	err := e.Load(t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, "keep", e.Text())
	assert.Equal(t, StatusOK, e.Undo())
}

func TestSaveWithoutPath(t *testing.T) {
	e := newTestEditor(t)
	assert.Error(t, e.Save(""))
}

func TestScrollFollowsCursor(t *testing.T) {
	e := NewEditor(Options{WrapWidth: -1, ScrollOff: 1})
	e.SetViewSize(20, 6) // five text rows

	for i := 0; i < 10; i++ {
		e.InsertNewLine()
	}
	y, _ := e.Viewport()
	assert.Equal(t, 6, y, "the view never scrolls past the last line")

	e.MoveUp()
	e.MoveUp()
	e.MoveUp()
	e.MoveUp()
	y, _ = e.Viewport()
	assert.Equal(t, 5, y, "one line of context is kept above the cursor")

	e.MoveDocStart()
	y, _ = e.Viewport()
	assert.Equal(t, 0, y)
}

func TestHorizontalScrollWithoutWrap(t *testing.T) {
	e := NewEditor(Options{WrapWidth: -1})
	e.SetViewSize(5, 3)
	typeText(e, "abcdefgh")

	_, x := e.Viewport()
	assert.Equal(t, 4, x)

	e.MoveDocStart()
	_, x = e.Viewport()
	assert.Equal(t, 0, x)
}

func TestSoftWrapFollowsView(t *testing.T) {
	e := NewEditor(Options{})
	e.SetViewSize(4, 10)
	typeText(e, "abcdefgh")

	assert.Equal(t, 2, e.LineCount())
	assert.Equal(t, types.Position{Line: 2, Col: 4}, e.GetCursor())

	e.SetViewSize(8, 10)
	assert.Equal(t, 1, e.LineCount())
}

func TestCursorEvents(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "ab")

	mgr := event.NewManager()
	var positions []types.Position
	mgr.Subscribe(event.TypeCursorMoved, func(ev event.Event) bool {
		positions = append(positions, ev.Data.(event.CursorMovedData).NewPosition)
		// Handlers run after the editor unlocks and may call back in.
		_ = e.GetCursor()
		return false
	})
	e.SetEventManager(mgr)

	e.MoveLeft()
	e.MoveDocStart()
	assert.Equal(t, []types.Position{{Line: 1, Col: 1}, {Line: 1, Col: 0}}, positions)
}

func TestCutSelection(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "cut here")

	cut, err := e.CutSelection()
	require.NoError(t, err)
	assert.False(t, cut, "nothing selected")

	e.MoveDocStart()
	e.StartSelection()
	e.JumpTo(4, 1)
	e.ExtendSelection()

	cut, err = e.CutSelection()
	require.NoError(t, err)
	assert.True(t, cut)
	assert.Equal(t, "here", e.Text())

	e.MoveDocEnd()
	require.True(t, e.PasteClipboard())
	assert.Equal(t, "herecut ", e.Text())

	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, StatusOK, e.Undo())
	assert.Equal(t, "cut here", e.Text())
}

func TestDeleteDropsEmptySelection(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "ab")

	// Shift+Right at the end anchors a selection on 'b' without covering anything.
	e.StartSelection()
	e.MoveRight()
	e.ExtendSelection()
	require.False(t, e.HasSelection())

	require.True(t, e.DeleteBackward())
	assert.Equal(t, "a", e.Text())

	e.StartSelection()
	e.MoveLeft()
	e.ExtendSelection()

	text, ok := e.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "a", text, "the new selection is anchored at the cursor, not the deleted node")

	assert.NotPanics(t, func() {
		copied, err := e.CopySelection()
		assert.NoError(t, err)
		assert.True(t, copied)
	})
	assert.Equal(t, "a", e.Text())
}

func TestClickDeleteThenShiftSelect(t *testing.T) {
	e := newTestEditor(t)
	typeText(e, "hello")

	// A click anchors an empty selection where it lands.
	e.JumpTo(3, 1)
	e.ClearSelection()
	e.StartSelection()

	require.True(t, e.DeleteBackward())
	assert.Equal(t, "helo", e.Text())

	e.StartSelection()
	e.MoveRight()
	e.ExtendSelection()

	assert.NotPanics(t, func() {
		require.True(t, e.DeleteBackward())
	})
	assert.Equal(t, "heo", e.Text())
}

// TestEditsAgainstSnapshots drives the editor with edits, shift selections,
// cuts and undo/redo, and checks every undo and redo against the text each
// edit left behind.
func TestEditsAgainstSnapshots(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := NewEditor(Options{TabWidth: 4, WrapWidth: -1})
		var undo, redo []string
		record := func(before string, changed bool) {
			if changed {
				undo = append(undo, before)
				redo = nil
			}
		}
		shiftMove := func(move func()) {
			e.StartSelection()
			move()
			e.ExtendSelection()
		}

		steps := rapid.IntRange(1, 80).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := e.Text()
			switch rapid.IntRange(0, 12).Draw(t, "op") {
			case 0:
				e.InsertRune(rapid.RuneFrom([]rune("ab\n é")).Draw(t, "rune"))
				record(before, true)
			case 1:
				record(before, e.DeleteBackward())
			case 2:
				e.ClearSelection()
				e.MoveLeft()
			case 3:
				e.ClearSelection()
				e.MoveRight()
			case 4:
				shiftMove(e.MoveLeft)
			case 5:
				shiftMove(e.MoveRight)
			case 6:
				shiftMove(e.MoveUp)
			case 7:
				x := rapid.IntRange(0, 6).Draw(t, "x")
				line := rapid.IntRange(1, 4).Draw(t, "line")
				e.JumpTo(x, line)
				e.ClearSelection()
				e.StartSelection()
			case 8:
				record(before, e.Paste(rapid.StringMatching(`[a-z\n]{0,5}`).Draw(t, "paste")))
			case 9:
				cut, err := e.CutSelection()
				if err != nil {
					t.Fatalf("cut: %v", err)
				}
				record(before, cut)
			case 10:
				if _, err := e.CopySelection(); err != nil {
					t.Fatalf("copy: %v", err)
				}
			case 11:
				status := e.Undo()
				if len(undo) == 0 {
					if status != StatusNothingToUndo {
						t.Fatalf("undo on empty history: %v", status)
					}
					continue
				}
				want := undo[len(undo)-1]
				undo = undo[:len(undo)-1]
				redo = append(redo, before)
				if got := e.Text(); status != StatusOK || got != want {
					t.Fatalf("undo: status %v, got %q, want %q", status, got, want)
				}
			case 12:
				status := e.Redo()
				if len(redo) == 0 {
					if status != StatusNothingToRedo {
						t.Fatalf("redo on empty history: %v", status)
					}
					continue
				}
				want := redo[len(redo)-1]
				redo = redo[:len(redo)-1]
				undo = append(undo, before)
				if got := e.Text(); status != StatusOK || got != want {
					t.Fatalf("redo: status %v, got %q, want %q", status, got, want)
				}
			}
		}
	})
}
