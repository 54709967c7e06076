package buffer

// lineIndex maps 1-based line numbers to the node starting each line.
// It is a point-in-time cache: whoever walks the buffer and decides where
// lines begin rebuilds it, and any edit makes it stale until the next pass.
type lineIndex struct {
	starts []NodeRef
}

// ResetLineIndex discards all recorded line starts before a new pass.
func (b *RingBuffer) ResetLineIndex() {
	b.lines.starts = b.lines.starts[:0]
}

// RecordLineStart maps the next line number to ref.
func (b *RingBuffer) RecordLineStart(ref NodeRef) {
	b.lines.starts = append(b.lines.starts, ref)
}

// LineStart returns the node that starts line. It reports false for an
// unknown line or when the recorded node has since been deleted.
func (b *RingBuffer) LineStart(line int) (NodeRef, bool) {
	if line < 1 || line > len(b.lines.starts) {
		return NodeRef{}, false
	}
	ref := b.lines.starts[line-1]
	if !b.valid(ref) {
		return NodeRef{}, false
	}
	return ref, true
}

// MaxLine returns the highest line number recorded in the last pass.
func (b *RingBuffer) MaxLine() int {
	return len(b.lines.starts)
}

func (b *RingBuffer) LineCount() int {
	return b.MaxLine()
}

// SetCursorToLine puts the cursor on the first node of line.
func (b *RingBuffer) SetCursorToLine(line int) bool {
	ref, ok := b.LineStart(line)
	if !ok {
		return false
	}
	b.cursor = ref.index
	return true
}
