// Package layout places buffer characters on screen cells and owns the
// buffer's line index: a Build pass decides where every visual line starts,
// and the jump helpers use those starts to move the cursor between lines.
package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/bethropolis/textring/internal/buffer"
	"github.com/bethropolis/textring/internal/logger"
)

const defaultTabWidth = 4

// Policy controls line breaking.
type Policy struct {
	Width    int // soft wrap column; 0 disables soft wrapping
	TabWidth int
	WordWrap bool // move a whole word to the next line instead of splitting it
}

func (p Policy) tabWidth() int {
	if p.TabWidth <= 0 {
		return defaultTabWidth
	}
	return p.TabWidth
}

// Cell is one character placed on the grid. Lines are 1-based, X is 0-based.
type Cell struct {
	Node  buffer.NodeRef
	Char  rune
	X     int
	Line  int
	Width int
}

// Layout is the result of one pass over the buffer.
type Layout struct {
	Cells      []Cell
	MaxLine    int
	CursorX    int
	CursorLine int

	index map[buffer.NodeRef]int
}

// Build walks buf with its own traversal, rebuilds the buffer's line index
// and computes where the cursor sits.
func Build(buf *buffer.RingBuffer, p Policy) *Layout {
	l := &Layout{
		Cells: make([]Cell, 0, 256),
		index: make(map[buffer.NodeRef]int, 256),
	}

	buf.ResetLineIndex()
	w := buf.NewTraversal()

	x, line := 0, 1
	atLineStart := true
	var word []int // cells of the word being laid out, for word wrap

	for r, ok := w.Advance(); ok; r, ok = w.Advance() {
		ref := w.Node()
		if atLineStart {
			buf.RecordLineStart(ref)
			atLineStart = false
		}

		width := cellWidth(r, x, p)
		switch r {
		case '\n':
			l.add(Cell{Node: ref, Char: r, X: x, Line: line})
			x, line = 0, line+1
			atLineStart = true
			word = word[:0]
			continue
		case ' ', '\t':
			word = word[:0]
		default:
			if p.Width > 0 && x > 0 && x+width > p.Width {
				line++
				if p.WordWrap && len(word) > 0 && l.Cells[word[0]].X > 0 {
					buf.RecordLineStart(l.Cells[word[0]].Node)
					x = 0
					for _, i := range word {
						l.Cells[i].X, l.Cells[i].Line = x, line
						x += l.Cells[i].Width
					}
					if x+width > p.Width {
						line++
						buf.RecordLineStart(ref)
						x = 0
						word = word[:0]
					}
				} else {
					buf.RecordLineStart(ref)
					x = 0
					word = word[:0]
				}
			}
			word = append(word, len(l.Cells))
		}
		l.add(Cell{Node: ref, Char: r, X: x, Line: line, Width: width})
		x += width
	}

	// An empty document or a trailing newline leaves one empty line whose
	// start is the sentinel.
	if atLineStart {
		buf.RecordLineStart(buffer.NodeRef{})
	}
	l.MaxLine = buf.MaxLine()
	l.CursorX, l.CursorLine = l.locate(buf.Cursor())

	logger.DebugTagf("layout", "Built %d cells over %d lines, cursor at %d:%d", len(l.Cells), l.MaxLine, l.CursorLine, l.CursorX)
	return l
}

func (l *Layout) add(c Cell) {
	l.index[c.Node] = len(l.Cells)
	l.Cells = append(l.Cells, c)
}

// locate returns the screen position right after ref.
func (l *Layout) locate(ref buffer.NodeRef) (x, line int) {
	i := l.CellIndex(ref)
	if i < 0 {
		return 0, 1
	}
	c := l.Cells[i]
	if c.Char == '\n' {
		return 0, c.Line + 1
	}
	return c.X + c.Width, c.Line
}

// CellIndex returns the position of ref in Cells, or -1 for the sentinel or
// a node the layout has not seen.
func (l *Layout) CellIndex(ref buffer.NodeRef) int {
	if ref.IsHead() {
		return -1
	}
	i, ok := l.index[ref]
	if !ok {
		return -1
	}
	return i
}

// Location returns the cursor position computed by Build.
func (l *Layout) Location() (x, line int) {
	return l.CursorX, l.CursorLine
}

func cellWidth(r rune, x int, p Policy) int {
	switch r {
	case '\n':
		return 0
	case '\t':
		tw := p.tabWidth()
		return tw - x%tw
	}
	return runewidth.RuneWidth(r)
}
