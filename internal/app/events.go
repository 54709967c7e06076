package app

import (
	"github.com/bethropolis/textring/internal/event"
)

// subscribeStatusHandlers keeps the status bar and screen in step with the editor.
func (a *App) subscribeStatusHandlers() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
}

func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition, a.editor.LineCount())
	}
	a.requestRedraw()
	return false
}

func (a *App) handleBufferModifiedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.statusBar.SetCursorInfo(data.Cursor, a.editor.LineCount())
	}
	a.statusBar.SetModified(true)
	a.requestRedraw()
	return false
}

func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.statusBar.SetFileInfo(data.FilePath, false)
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		a.statusBar.SetFileInfo(data.FilePath, false)
	}
	a.requestRedraw()
	return false
}
