package layout

import (
	"github.com/bethropolis/textring/internal/buffer"
)

// NextLine moves the cursor to the same column on the following line. On the
// last line it goes to the end of the document.
func NextLine(buf *buffer.RingBuffer, l *Layout) {
	if l.CursorLine >= l.MaxLine {
		buf.SetCursorToTail()
		return
	}
	seekColumn(buf, l, l.CursorLine+1, l.CursorX)
}

// PrevLine moves the cursor to the same column on the previous line. On the
// first line it goes to the start of the document.
func PrevLine(buf *buffer.RingBuffer, l *Layout) {
	if l.CursorLine <= 1 {
		buf.SetCursorToHead()
		return
	}
	seekColumn(buf, l, l.CursorLine-1, l.CursorX)
}

// JumpTo moves the cursor to the cell boundary closest to column x on line.
// Lines past the end put the cursor at the end of the document.
func JumpTo(buf *buffer.RingBuffer, l *Layout, x, line int) {
	if line < 1 {
		line = 1
	}
	if line > l.MaxLine {
		buf.SetCursorToTail()
		return
	}
	seekColumn(buf, l, line, x)
}

// seekColumn starts on the first node of line and walks forward, summing
// cell widths. It stops one node back on hitting a newline, the sentinel,
// the start of the next line, or a width beyond x.
//
// Across a soft wrap, backing up from the first node of the target line
// leaves the cursor after the last node of the line above, which locates at
// the end of that line. Moving down from column 0 onto a wrapped line
// therefore stays on the same visual line; the next move continues from the
// wrap column.
func seekColumn(buf *buffer.RingBuffer, l *Layout, line, x int) {
	next, hasNext := buf.LineStart(line + 1)
	if !buf.SetCursorToLine(line) {
		buf.SetCursorToTail()
		return
	}

	acc := 0
	for {
		if buf.CursorAtHead() {
			buf.MoveCursor(buffer.Backward, false)
			return
		}
		if ch, _ := buf.CursorChar(); ch == '\n' {
			buf.MoveCursor(buffer.Backward, false)
			return
		}
		if hasNext && buf.IsCursorAt(next) {
			buf.MoveCursor(buffer.Backward, false)
			return
		}
		if i := l.CellIndex(buf.Cursor()); i >= 0 {
			acc += l.Cells[i].Width
		}
		if acc > x {
			buf.MoveCursor(buffer.Backward, false)
			return
		}
		buf.MoveCursor(buffer.Forward, false)
	}
}
