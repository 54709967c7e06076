// Package clipboard holds copied text for the editor. When the system
// clipboard is enabled and available it is used, with an in-process register
// as the fallback.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/textring/internal/logger"
)

// Manager handles clipboard operations
type Manager struct {
	mu        sync.Mutex
	useSystem bool
	register  string

	writeSystem func(string) error
	readSystem  func() (string, error)
}

// NewManager creates a clipboard. useSystem is ignored on platforms where no
// system clipboard utility is available.
func NewManager(useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("ClipboardManager: System clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{
		useSystem:   useSystem,
		writeSystem: clipboard.WriteAll,
		readSystem:  clipboard.ReadAll,
	}
}

// Copy stores text. The internal register is always updated, so a failing
// system clipboard still leaves the text available to Paste.
func (m *Manager) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = text
	logger.Debugf("ClipboardManager: Copied %d bytes", len(text))

	if !m.useSystem {
		return nil
	}
	if err := m.writeSystem(text); err != nil {
		return fmt.Errorf("failed to write system clipboard: %w", err)
	}
	return nil
}

// Paste returns the current clipboard text, false when there is nothing to paste.
func (m *Manager) Paste() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.useSystem {
		text, err := m.readSystem()
		if err == nil && text != "" {
			return text, true
		}
		if err != nil {
			logger.Warnf("ClipboardManager: System clipboard read failed, using register: %v", err)
		}
	}
	if m.register == "" {
		return "", false
	}
	return m.register, true
}

// UsesSystem reports whether the system clipboard is in use.
func (m *Manager) UsesSystem() bool {
	return m.useSystem
}
