// Package history provides undo/redo as two bounded stacks of events, each of
// which knows how to build its own inverse against the buffer.
package history

import (
	"fmt"

	"github.com/bethropolis/textring/internal/buffer"
)

// Event is one undoable unit. The concrete variants are Insert, Delete,
// PasteDelete and SequenceDelete.
type Event interface {
	fmt.Stringer
	// refs lists the nodes the event names, so they stay pinned while it is stacked.
	refs() []buffer.NodeRef
}

// Insert records that one character was added at Node.
type Insert struct {
	Node buffer.NodeRef
}

// Delete records that Char was removed and the cursor fell back to
// Predecessor. Node is the removed node's identity, reused on re-insert.
type Delete struct {
	Node        buffer.NodeRef
	Char        rune
	Predecessor buffer.NodeRef
}

// PasteDelete records Count characters inserted as one unit, ending at LastNode.
type PasteDelete struct {
	LastNode buffer.NodeRef
	Count    int
}

// Removed is one node taken out while undoing a paste.
type Removed struct {
	Node buffer.NodeRef
	Char rune
}

// SequenceDelete is the inverse of a PasteDelete: the removed nodes in
// document order and the node the cursor returned to.
type SequenceDelete struct {
	Nodes []Removed
	Start buffer.NodeRef
}

func (e Insert) refs() []buffer.NodeRef { return []buffer.NodeRef{e.Node} }

func (e Delete) refs() []buffer.NodeRef { return []buffer.NodeRef{e.Node, e.Predecessor} }

func (e PasteDelete) refs() []buffer.NodeRef { return []buffer.NodeRef{e.LastNode} }

func (e SequenceDelete) refs() []buffer.NodeRef {
	refs := make([]buffer.NodeRef, 0, len(e.Nodes)+1)
	for _, n := range e.Nodes {
		refs = append(refs, n.Node)
	}
	return append(refs, e.Start)
}

func (e Insert) String() string { return "insert" }

func (e Delete) String() string { return fmt.Sprintf("delete %q", e.Char) }

func (e PasteDelete) String() string { return fmt.Sprintf("paste(%d)", e.Count) }

func (e SequenceDelete) String() string { return fmt.Sprintf("sequence-delete(%d)", len(e.Nodes)) }
