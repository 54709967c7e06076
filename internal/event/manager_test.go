package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsumption(t *testing.T) {
	m := NewManager()
	var calls []string

	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "second")
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "third")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})
	assert.Equal(t, []string{"first:a.txt", "second"}, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Dispatch(TypeCursorMoved, CursorMovedData{}) })
}

func TestHandlerMaySubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	count := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		count++
		m.Subscribe(TypeAppReady, func(Event) bool { count++; return false })
		return false
	})

	m.Dispatch(TypeAppReady, AppReadyData{})
	assert.Equal(t, 1, count, "handlers added mid-dispatch wait for the next event")

	m.Dispatch(TypeAppReady, AppReadyData{})
	assert.Equal(t, 3, count)
}
