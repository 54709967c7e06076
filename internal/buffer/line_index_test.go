package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordNewlineStarts is the simplest line-break policy: a line begins at the
// first node and after every '\n'.
func recordNewlineStarts(b *RingBuffer) {
	b.ResetLineIndex()
	w := b.NewTraversal()
	atLineStart := true
	for r, ok := w.Advance(); ok; r, ok = w.Advance() {
		if atLineStart {
			b.RecordLineStart(w.Node())
		}
		atLineStart = r == '\n'
	}
	if atLineStart {
		b.RecordLineStart(NodeRef{})
	}
}

func TestLineIndex(t *testing.T) {
	b := newBufferFromString("ab\ncd\n")
	recordNewlineStarts(b)

	assert.Equal(t, 3, b.MaxLine())
	assert.Equal(t, 3, b.LineCount())

	start, ok := b.LineStart(2)
	require.True(t, ok)
	r, _ := b.Char(start)
	assert.Equal(t, 'c', r)

	start, ok = b.LineStart(3)
	require.True(t, ok)
	assert.True(t, start.IsHead(), "trailing empty line starts at the sentinel")

	_, ok = b.LineStart(0)
	assert.False(t, ok)
	_, ok = b.LineStart(4)
	assert.False(t, ok)
}

func TestLineIndexReset(t *testing.T) {
	b := newBufferFromString("a\nb")
	recordNewlineStarts(b)
	require.Equal(t, 2, b.MaxLine())

	b.ResetLineIndex()
	assert.Equal(t, 0, b.MaxLine())
	_, ok := b.LineStart(1)
	assert.False(t, ok)
}

func TestLineStartDetectsDeletedNode(t *testing.T) {
	b := newBufferFromString("a\nb")
	recordNewlineStarts(b)

	b.DeleteAtCursor() // removes 'b', the start of line 2
	_, ok := b.LineStart(2)
	assert.False(t, ok, "stale entries are reported until the index is rebuilt")

	recordNewlineStarts(b)
	start, ok := b.LineStart(2)
	require.True(t, ok)
	assert.True(t, start.IsHead())
}

func TestSetCursorToLine(t *testing.T) {
	b := newBufferFromString("one\ntwo")
	recordNewlineStarts(b)

	require.True(t, b.SetCursorToLine(2))
	r, _ := b.CursorChar()
	assert.Equal(t, 't', r)

	assert.False(t, b.SetCursorToLine(5))
	r, _ = b.CursorChar()
	assert.Equal(t, 't', r, "unknown line leaves the cursor alone")
}
