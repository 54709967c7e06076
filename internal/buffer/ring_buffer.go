package buffer

import (
	"fmt"
	"strings"

	"github.com/bethropolis/textring/internal/logger"
)

// sentinel is the arena slot closing the ring. It is never deleted and
// never carries a character.
const sentinel int32 = 0

type slot struct {
	ch   rune
	next int32
	prev int32
	gen  uint32 // bumped each time the slot is recycled
	live bool
	pins int32 // history events still naming this slot
}

// RingBuffer is the arena-backed implementation of Buffer.
// A deleted slot is recycled only once nothing pins it, so history events can
// revive a deleted node under its original identity.
type RingBuffer struct {
	slots  []slot
	free   []int32
	cursor int32 // node immediately before the insertion point
	lines  lineIndex
}

// NewRingBuffer creates an empty buffer with the cursor at the sentinel.
func NewRingBuffer() *RingBuffer {
	b := &RingBuffer{
		slots: make([]slot, 1, 64),
	}
	b.slots[sentinel] = slot{live: true}
	return b
}

func (b *RingBuffer) ref(i int32) NodeRef {
	return NodeRef{index: i, gen: b.slots[i].gen}
}

func (b *RingBuffer) inRange(ref NodeRef) bool {
	return ref.index >= 0 && int(ref.index) < len(b.slots)
}

// valid reports whether ref names a live node (the sentinel always is).
func (b *RingBuffer) valid(ref NodeRef) bool {
	if !b.inRange(ref) {
		return false
	}
	s := &b.slots[ref.index]
	return s.live && s.gen == ref.gen
}

// resolve maps a live ref to its slot index. A dead or recycled ref is an
// invariant violation.
func (b *RingBuffer) resolve(ref NodeRef) int32 {
	if !b.valid(ref) {
		panic(fmt.Errorf("%w: slot %d (gen %d)", ErrDanglingRef, ref.index, ref.gen))
	}
	return ref.index
}

func (b *RingBuffer) alloc(ch rune) int32 {
	if n := len(b.free); n > 0 {
		i := b.free[n-1]
		b.free = b.free[:n-1]
		s := &b.slots[i]
		s.ch = ch
		s.live = true
		s.pins = 0
		return i
	}
	b.slots = append(b.slots, slot{ch: ch, live: true})
	return int32(len(b.slots) - 1)
}

// link splices slot i in right after the cursor and advances the cursor to it.
func (b *RingBuffer) link(i int32) {
	c := b.cursor
	n := b.slots[c].next
	b.slots[i].prev = c
	b.slots[i].next = n
	b.slots[n].prev = i
	b.slots[c].next = i
	b.cursor = i
}

// reclaim returns a dead, unpinned slot to the free list.
func (b *RingBuffer) reclaim(i int32) {
	s := &b.slots[i]
	if s.live || s.pins > 0 {
		return
	}
	s.gen++
	s.ch = 0
	s.next, s.prev = sentinel, sentinel
	b.free = append(b.free, i)
}

// InsertAfterCursor adds ch right after the cursor and moves the cursor onto it.
func (b *RingBuffer) InsertAfterCursor(ch rune) NodeRef {
	i := b.alloc(ch)
	b.link(i)
	return b.ref(i)
}

// InsertNodeAfterCursor re-creates a previously deleted character. When hint
// still names the dead slot it came from, that slot is relinked so older
// history events keep resolving; otherwise a fresh slot is used.
func (b *RingBuffer) InsertNodeAfterCursor(ch rune, hint NodeRef) NodeRef {
	if hint.index != sentinel && b.inRange(hint) {
		s := &b.slots[hint.index]
		if !s.live && s.gen == hint.gen {
			s.ch = ch
			s.live = true
			b.link(hint.index)
			return hint
		}
		logger.DebugTagf("buffer", "Revive hint slot %d not reusable, allocating fresh node", hint.index)
	}
	return b.InsertAfterCursor(ch)
}

// DeleteAtCursor removes the cursor's node and moves the cursor to its
// predecessor. It reports false, without mutating, when the cursor is at the
// sentinel.
func (b *RingBuffer) DeleteAtCursor() (Removal, bool) {
	c := b.cursor
	if c == sentinel {
		return Removal{}, false
	}
	s := &b.slots[c]
	removed := b.ref(c)
	ch := s.ch

	b.slots[s.next].prev = s.prev
	b.slots[s.prev].next = s.next
	b.cursor = s.prev
	s.live = false
	b.reclaim(c)

	return Removal{Node: removed, Char: ch, Predecessor: b.ref(b.cursor)}, true
}

// MoveCursor steps the cursor one node. With clamp set, stepping backward from
// the sentinel or forward from the last node does nothing; without it the step
// always happens and the caller owns the boundary checks.
func (b *RingBuffer) MoveCursor(dir Direction, clamp bool) {
	switch dir {
	case Forward:
		next := b.slots[b.cursor].next
		if clamp && next == sentinel {
			return
		}
		b.cursor = next
	case Backward:
		if clamp && b.cursor == sentinel {
			return
		}
		b.cursor = b.slots[b.cursor].prev
	}
}

// SetCursorToNode positions the cursor directly. Panics if ref is dangling.
func (b *RingBuffer) SetCursorToNode(ref NodeRef) {
	b.cursor = b.resolve(ref)
}

// SetCursorToHead moves the cursor to the sentinel (before the first character).
func (b *RingBuffer) SetCursorToHead() {
	b.cursor = sentinel
}

// SetCursorToTail moves the cursor to the last character, or the sentinel when empty.
func (b *RingBuffer) SetCursorToTail() {
	b.cursor = b.slots[sentinel].prev
}

func (b *RingBuffer) Cursor() NodeRef {
	return b.ref(b.cursor)
}

func (b *RingBuffer) IsCursorAt(ref NodeRef) bool {
	return ref.index == b.cursor && ref.gen == b.slots[b.cursor].gen
}

func (b *RingBuffer) CursorAtHead() bool {
	return b.cursor == sentinel
}

// CursorChar returns the character under the cursor; false at the sentinel.
func (b *RingBuffer) CursorChar() (rune, bool) {
	if b.cursor == sentinel {
		return 0, false
	}
	return b.slots[b.cursor].ch, true
}

// Char returns the character held by ref; false for the sentinel or a dead ref.
func (b *RingBuffer) Char(ref NodeRef) (rune, bool) {
	if ref.IsHead() || !b.valid(ref) {
		return 0, false
	}
	return b.slots[ref.index].ch, true
}

// Retain pins the slot named by ref so it is not recycled after deletion.
func (b *RingBuffer) Retain(ref NodeRef) {
	if ref.IsHead() || !b.inRange(ref) || b.slots[ref.index].gen != ref.gen {
		return
	}
	b.slots[ref.index].pins++
}

// Release drops a pin taken by Retain, recycling the slot if it is dead and
// no longer named by anyone.
func (b *RingBuffer) Release(ref NodeRef) {
	if ref.IsHead() || !b.inRange(ref) {
		return
	}
	s := &b.slots[ref.index]
	if s.gen != ref.gen || s.pins == 0 {
		return
	}
	s.pins--
	b.reclaim(ref.index)
}

// Len counts the characters by walking the ring.
func (b *RingBuffer) Len() int {
	n := 0
	for i := b.slots[sentinel].next; i != sentinel; i = b.slots[i].next {
		n++
	}
	return n
}

// String returns the whole document.
func (b *RingBuffer) String() string {
	var sb strings.Builder
	for i := b.slots[sentinel].next; i != sentinel; i = b.slots[i].next {
		sb.WriteRune(b.slots[i].ch)
	}
	return sb.String()
}

// Between returns the text strictly after the earlier of from/to up to and
// including the later one. Either end may be the sentinel.
func (b *RingBuffer) Between(from, to NodeRef) string {
	i, j := b.resolve(from), b.resolve(to)
	if i == j {
		return ""
	}
	if s, ok := b.collect(i, j); ok {
		return s
	}
	s, _ := b.collect(j, i)
	return s
}

func (b *RingBuffer) collect(from, to int32) (string, bool) {
	var sb strings.Builder
	for i := b.slots[from].next; i != sentinel; i = b.slots[i].next {
		sb.WriteRune(b.slots[i].ch)
		if i == to {
			return sb.String(), true
		}
	}
	return "", false
}

// Ensure RingBuffer satisfies the Buffer interface
var _ Buffer = (*RingBuffer)(nil)
