package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/textring/internal/core"
	"github.com/bethropolis/textring/internal/theme"
)

func newSimTUI(t *testing.T, w, h int) *TUI {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	ui, err := NewWithScreen(screen, &theme.Dark)
	require.NoError(t, err)
	screen.SetSize(w, h)
	t.Cleanup(ui.Close)
	return ui
}

func cellAt(t *testing.T, ui *TUI, x, y int) (rune, tcell.Style) {
	t.Helper()
	mainc, _, style, _ := ui.GetScreen().GetContent(x, y)
	return mainc, style
}

func newEditor(w, h int, text string) *core.Editor {
	e := core.NewEditor(core.Options{TabWidth: 4, WrapWidth: -1})
	e.SetViewSize(w, h)
	for _, r := range text {
		e.InsertRune(r)
	}
	return e
}

func TestDrawBuffer(t *testing.T) {
	ui := newSimTUI(t, 10, 4)
	e := newEditor(10, 4, "ab\n\tc")

	DrawBuffer(ui, e)

	r, _ := cellAt(t, ui, 0, 0)
	assert.Equal(t, 'a', r)
	r, _ = cellAt(t, ui, 1, 0)
	assert.Equal(t, 'b', r)
	r, _ = cellAt(t, ui, 2, 1)
	assert.Equal(t, ' ', r, "tab expands to blanks")
	r, _ = cellAt(t, ui, 4, 1)
	assert.Equal(t, 'c', r)
}

func TestDrawSelection(t *testing.T) {
	ui := newSimTUI(t, 10, 4)
	e := newEditor(10, 4, "ab\ncd")

	e.JumpTo(1, 1)
	e.StartSelection()
	e.JumpTo(0, 2)
	e.ExtendSelection()
	DrawBuffer(ui, e)

	sel := theme.Dark.GetStyle(theme.StyleSelection)
	def := theme.Dark.GetStyle(theme.StyleDefault)

	_, style := cellAt(t, ui, 0, 0)
	assert.Equal(t, def, style)
	_, style = cellAt(t, ui, 1, 0)
	assert.Equal(t, sel, style)
	_, style = cellAt(t, ui, 2, 0)
	assert.Equal(t, sel, style, "the selected newline is shown")
	_, style = cellAt(t, ui, 0, 1)
	assert.Equal(t, def, style)
}

func TestDrawScrolled(t *testing.T) {
	ui := newSimTUI(t, 3, 3)
	e := newEditor(3, 3, "1\n2\n3\n4xyz")

	DrawBuffer(ui, e)
	DrawCursor(ui, e)

	y, x := e.Viewport()
	require.Equal(t, 2, y)
	require.Equal(t, 2, x)
	r, _ := cellAt(t, ui, 0, 1)
	assert.Equal(t, 'y', r)
	r, _ = cellAt(t, ui, 1, 1)
	assert.Equal(t, 'z', r)
}
