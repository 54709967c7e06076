package buffer

// Traversal is a read cursor over the ring, independent of the edit cursor
// and of every other Traversal. It starts at the sentinel and can be reset
// at any time. A Traversal parked on a node that is later deleted must be
// Reset or Seek'd before use.
type Traversal struct {
	buf *RingBuffer
	pos int32
}

// NewTraversal returns a walker positioned at the sentinel.
func (b *RingBuffer) NewTraversal() *Traversal {
	return &Traversal{buf: b, pos: sentinel}
}

// Reset moves the walker back to the sentinel.
func (t *Traversal) Reset() {
	t.pos = sentinel
}

// Advance steps forward and yields the character there; false once the
// walker wraps around to the sentinel.
func (t *Traversal) Advance() (rune, bool) {
	t.pos = t.buf.slots[t.pos].next
	if t.pos == sentinel {
		return 0, false
	}
	return t.buf.slots[t.pos].ch, true
}

// Retreat steps backward; false on reaching the sentinel.
func (t *Traversal) Retreat() (rune, bool) {
	t.pos = t.buf.slots[t.pos].prev
	if t.pos == sentinel {
		return 0, false
	}
	return t.buf.slots[t.pos].ch, true
}

// Node returns the walker's current node.
func (t *Traversal) Node() NodeRef {
	return t.buf.ref(t.pos)
}

// Seek parks the walker on ref. Panics if ref is dangling.
func (t *Traversal) Seek(ref NodeRef) {
	t.pos = t.buf.resolve(ref)
}

// AtCursor reports whether the walker sits on the edit cursor's node.
func (t *Traversal) AtCursor() bool {
	return t.pos == t.buf.cursor
}
