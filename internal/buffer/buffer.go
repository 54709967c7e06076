// Package buffer stores editable text as a ring of character nodes held in an
// arena, with a single edit cursor and a rebuilt-per-pass line index.
package buffer

import "errors"

// ErrDanglingRef is the panic value (wrapped) raised when a NodeRef names a
// node that has been deleted or whose slot has been recycled.
var ErrDanglingRef = errors.New("dangling node reference")

// NodeRef is a stable handle to a node in the buffer's arena.
// The zero value refers to the sentinel.
type NodeRef struct {
	index int32
	gen   uint32
}

// IsHead reports whether ref names the sentinel.
func (r NodeRef) IsHead() bool {
	return r.index == 0
}

// Direction selects the step direction for cursor movement.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Removal describes the node taken out by DeleteAtCursor.
type Removal struct {
	Node        NodeRef // identity of the removed node, now dead
	Char        rune
	Predecessor NodeRef // the new cursor position
}

// Buffer defines the operations the editor and its collaborators need.
type Buffer interface {
	InsertAfterCursor(ch rune) NodeRef
	DeleteAtCursor() (Removal, bool)
	MoveCursor(dir Direction, clamp bool)
	SetCursorToNode(ref NodeRef)
	SetCursorToHead()
	SetCursorToTail()
	InsertNodeAfterCursor(ch rune, hint NodeRef) NodeRef

	Cursor() NodeRef
	IsCursorAt(ref NodeRef) bool
	CursorAtHead() bool
	CursorChar() (rune, bool)
	Char(ref NodeRef) (rune, bool)

	NewTraversal() *Traversal

	ResetLineIndex()
	RecordLineStart(ref NodeRef)
	LineStart(line int) (NodeRef, bool)
	MaxLine() int
	LineCount() int
	SetCursorToLine(line int) bool

	Retain(ref NodeRef)
	Release(ref NodeRef)

	Len() int
	String() string
	Between(a, b NodeRef) string
}
