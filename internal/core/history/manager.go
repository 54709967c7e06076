package history

import (
	"errors"
	"sync"

	"github.com/bethropolis/textring/internal/buffer"
	"github.com/bethropolis/textring/internal/logger"
)

const DefaultMaxHistory = 100

var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Target is the slice of the buffer the history manager drives. It only ever
// repositions the cursor and inserts or deletes through these primitives.
type Target interface {
	SetCursorToNode(ref buffer.NodeRef)
	Cursor() buffer.NodeRef
	DeleteAtCursor() (buffer.Removal, bool)
	InsertNodeAfterCursor(ch rune, hint buffer.NodeRef) buffer.NodeRef
	Retain(ref buffer.NodeRef)
	Release(ref buffer.NodeRef)
}

// Manager handles the undo and redo stacks.
type Manager struct {
	target     Target
	undo       []Event
	redo       []Event
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager bound to target.
func NewManager(target Target, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		target:     target,
		undo:       make([]Event, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record pushes a new event and invalidates all redo history.
func (m *Manager) Record(ev Event) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.pushUndo(ev)
	m.dropAll(&m.redo)

	logger.Debugf("History: Recorded %v. Undo: %d, Redo: %d", ev, len(m.undo), len(m.redo))
}

// Undo reverts the most recent event and moves its inverse onto the redo stack.
func (m *Manager) Undo() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ev, ok := pop(&m.undo)
	if !ok {
		logger.Debugf("History: Nothing to undo.")
		return ErrNothingToUndo
	}

	inverse := m.revert(ev)
	m.pin(inverse)
	m.redo = append(m.redo, inverse)
	m.unpin(ev)

	logger.Debugf("History: Undid %v, queued %v for redo. Undo: %d, Redo: %d", ev, inverse, len(m.undo), len(m.redo))
	return nil
}

// Redo reapplies the most recently undone event. The redo stack itself is
// only popped, never cleared.
func (m *Manager) Redo() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ev, ok := pop(&m.redo)
	if !ok {
		logger.Debugf("History: Nothing to redo.")
		return ErrNothingToRedo
	}

	inverse := m.revert(ev)
	m.pushUndo(inverse)
	m.unpin(ev)

	logger.Debugf("History: Redid %v. Undo: %d, Redo: %d", inverse, len(m.undo), len(m.redo))
	return nil
}

// revert applies the inverse of ev to the target and returns the event that
// would in turn revert that.
func (m *Manager) revert(ev Event) Event {
	switch e := ev.(type) {
	case Insert:
		m.target.SetCursorToNode(e.Node)
		rm, _ := m.target.DeleteAtCursor()
		return Delete{Node: rm.Node, Char: rm.Char, Predecessor: rm.Predecessor}

	case Delete:
		m.target.SetCursorToNode(e.Predecessor)
		node := m.target.InsertNodeAfterCursor(e.Char, e.Node)
		return Insert{Node: node}

	case PasteDelete:
		m.target.SetCursorToNode(e.LastNode)
		// Deletion walks backward from the last pasted node; fill from the
		// end so Nodes ends up in document order.
		nodes := make([]Removed, e.Count)
		for i := e.Count - 1; i >= 0; i-- {
			rm, ok := m.target.DeleteAtCursor()
			if !ok {
				logger.Warnf("History: Paste undo hit buffer start with %d of %d left", i+1, e.Count)
				nodes = nodes[i+1:]
				break
			}
			nodes[i] = Removed{Node: rm.Node, Char: rm.Char}
		}
		return SequenceDelete{Nodes: nodes, Start: m.target.Cursor()}

	case SequenceDelete:
		m.target.SetCursorToNode(e.Start)
		last := e.Start
		for _, n := range e.Nodes {
			last = m.target.InsertNodeAfterCursor(n.Char, n.Node)
		}
		return PasteDelete{LastNode: last, Count: len(e.Nodes)}
	}

	panic("history: unknown event type")
}

// pushUndo appends to the undo stack, evicting the oldest entry past capacity.
func (m *Manager) pushUndo(ev Event) {
	m.pin(ev)
	m.undo = append(m.undo, ev)
	if len(m.undo) > m.maxHistory {
		evicted := m.undo[0]
		m.undo[0] = nil
		m.undo = m.undo[1:]
		m.unpin(evicted)
		logger.Debugf("History: Evicted oldest event %v", evicted)
	}
}

func (m *Manager) pin(ev Event) {
	for _, ref := range ev.refs() {
		m.target.Retain(ref)
	}
}

func (m *Manager) unpin(ev Event) {
	for _, ref := range ev.refs() {
		m.target.Release(ref)
	}
}

func (m *Manager) dropAll(stack *[]Event) {
	for _, ev := range *stack {
		m.unpin(ev)
	}
	*stack = (*stack)[:0]
}

func pop(stack *[]Event) (Event, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	ev := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return ev, true
}

// Clear resets both stacks. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.dropAll(&m.undo)
	m.dropAll(&m.redo)
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are events that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo) > 0
}

// CanRedo returns true if there are events that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo) > 0
}

// UndoLen returns the undo stack depth.
func (m *Manager) UndoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undo)
}

// RedoLen returns the redo stack depth.
func (m *Manager) RedoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redo)
}
