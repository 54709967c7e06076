// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/textring/internal/layout"
	"github.com/bethropolis/textring/internal/theme"
	"github.com/bethropolis/textring/internal/types"
)

// View is what drawing needs from the editor.
type View interface {
	Layout() *layout.Layout
	Viewport() (y, x int)
	ViewHeight() int
	SelectionRange() (start, end int, ok bool)
	GetCursor() types.Position
}

// DrawBuffer draws the visible part of the layout. Selected cells use the
// theme's Selection style; a selected newline shows as one selected blank.
func DrawBuffer(t *TUI, v View) {
	width, _ := t.Size()
	viewHeight := v.ViewHeight()
	if viewHeight <= 0 || width <= 0 {
		return
	}

	defaultStyle := t.theme.GetStyle(theme.StyleDefault)
	selectionStyle := t.theme.GetStyle(theme.StyleSelection)

	for y := 0; y < viewHeight; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	l := v.Layout()
	viewY, viewX := v.Viewport()
	selStart, selEnd, selected := v.SelectionRange()

	for i, c := range l.Cells {
		row := c.Line - 1 - viewY
		if row < 0 {
			continue
		}
		if row >= viewHeight {
			break // cells are in line order
		}

		inSelection := selected && i >= selStart && i < selEnd
		style := defaultStyle
		if inSelection {
			style = selectionStyle
		}

		x := c.X - viewX
		switch {
		case c.Char == '\n':
			if inSelection && x >= 0 && x < width {
				t.screen.SetContent(x, row, ' ', nil, style)
			}
		case c.Char == '\t':
			for dx := 0; dx < c.Width; dx++ {
				if x+dx >= 0 && x+dx < width {
					t.screen.SetContent(x+dx, row, ' ', nil, style)
				}
			}
		case c.Width == 0:
			// zero-width runes have no cell of their own
		case x >= 0 && x+c.Width <= width:
			t.screen.SetContent(x, row, c.Char, nil, style)
		}
	}
}

// DrawCursor places the terminal cursor. The cursor after the last cell
// of a full-width line is pinned to the last column.
func DrawCursor(t *TUI, v View) {
	width, _ := t.Size()
	viewHeight := v.ViewHeight()
	pos := v.GetCursor()
	viewY, viewX := v.Viewport()

	x := pos.Col - viewX
	y := pos.Line - 1 - viewY
	if x >= width {
		x = width - 1
	}
	if x < 0 || y < 0 || y >= viewHeight || width <= 0 {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

// Draw paints a full frame: text, then the caller's extra layers, then
// the cursor.
func Draw(t *TUI, v View, layers ...func(screen tcell.Screen, width, height int)) {
	width, height := t.Size()
	DrawBuffer(t, v)
	for _, layer := range layers {
		layer(t.screen, width, height)
	}
	DrawCursor(t, v)
	t.Show()
}
