package selection

import (
	"github.com/bethropolis/textring/internal/buffer"
	"github.com/bethropolis/textring/internal/logger"
)

// Manager tracks a selection as two cursor positions: the anchor where it
// started and the end that follows the cursor. Both name the node the cursor
// sat on, so the selected text is everything after the earlier one up to and
// including the later one.
type Manager struct {
	selecting bool
	anchor    buffer.NodeRef
	end       buffer.NodeRef
}

// NewManager creates a new selection manager.
func NewManager() *Manager {
	return &Manager{}
}

// StartOrUpdate anchors a new selection at cursor, or moves the end of the
// current one there.
func (m *Manager) StartOrUpdate(cursor buffer.NodeRef) {
	if !m.selecting {
		m.anchor = cursor
		m.selecting = true
		logger.DebugTagf("core", "Selection Manager: Started at %v", cursor)
	}
	m.end = cursor
}

// UpdateEnd moves the end of an active selection to cursor.
func (m *Manager) UpdateEnd(cursor buffer.NodeRef) {
	if m.selecting {
		m.end = cursor
	}
}

// Clear resets the selection state.
func (m *Manager) Clear() {
	if m.selecting {
		logger.DebugTagf("core", "Selection Manager: Cleared")
	}
	m.selecting = false
	m.anchor = buffer.NodeRef{}
	m.end = buffer.NodeRef{}
}

// IsSelecting returns the raw selecting flag state.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}

// HasSelection reports a selection that covers at least one character.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.end
}

// Bounds returns the anchor and end, unordered.
func (m *Manager) Bounds() (anchor, end buffer.NodeRef, ok bool) {
	if !m.HasSelection() {
		return buffer.NodeRef{}, buffer.NodeRef{}, false
	}
	return m.anchor, m.end, true
}
