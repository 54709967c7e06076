// internal/event/event.go
package event

import (
	"github.com/bethropolis/textring/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor events
	TypeBufferModified // buffer content changed (insert, delete, paste, undo, redo)
	TypeBufferLoaded
	TypeBufferSaved
	TypeCursorMoved

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes a change to the character stream.
type BufferModifiedData struct {
	Cursor types.Position
	Length int // characters in the buffer after the change
}

type BufferLoadedData struct {
	FilePath string
}

type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

type AppQuitData struct{}

type AppReadyData struct{}
