// internal/core/editor.go
package core

import (
	"fmt"
	"sync"

	"github.com/bethropolis/textring/internal/buffer"
	"github.com/bethropolis/textring/internal/config"
	"github.com/bethropolis/textring/internal/core/clipboard"
	"github.com/bethropolis/textring/internal/core/history"
	"github.com/bethropolis/textring/internal/core/selection"
	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/layout"
	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/internal/storage"
	"github.com/bethropolis/textring/internal/types"
)

// Options configures a new Editor.
type Options struct {
	TabWidth        int
	ScrollOff       int
	WrapWidth       int // 0 wraps at the view width, negative disables soft wrap
	WordWrap        bool
	SystemClipboard bool
	HistoryLimit    int
}

// OptionsFromConfig maps the [editor] table onto editor options.
func OptionsFromConfig(cfg config.EditorConfig) Options {
	return Options{
		TabWidth:        cfg.TabWidth,
		ScrollOff:       cfg.ScrollOff,
		WrapWidth:       cfg.WrapWidth,
		WordWrap:        cfg.WordWrap,
		SystemClipboard: cfg.SystemClipboard,
		HistoryLimit:    cfg.HistoryLimit,
	}
}

type notification struct {
	typ  event.Type
	data interface{}
}

// Editor ties the buffer, its history and the layout together and is the only
// thing the UI talks to. All methods are safe for concurrent use; events are
// dispatched after the editor's lock is released so handlers may call back in.
type Editor struct {
	mu sync.Mutex

	buffer    *buffer.RingBuffer
	history   *history.Manager
	clipboard *clipboard.Manager
	selection *selection.Manager

	eventManager *event.Manager
	pending      []notification

	opts   Options
	layout *layout.Layout
	stale  bool

	filePath string
	modified bool

	viewportY  int // lines scrolled off the top
	viewportX  int // columns scrolled off the left, only without soft wrap
	viewWidth  int
	viewHeight int
	scrollOff  int
}

// NewEditor creates an editor over an empty buffer.
func NewEditor(opts Options) *Editor {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = history.DefaultMaxHistory
	}
	buf := buffer.NewRingBuffer()
	return &Editor{
		buffer:    buf,
		history:   history.NewManager(buf, opts.HistoryLimit),
		clipboard: clipboard.NewManager(opts.SystemClipboard),
		selection: selection.NewManager(),
		opts:      opts,
		stale:     true,
		scrollOff: opts.ScrollOff,
	}
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eventManager = mgr
}

// do runs fn under the lock and then delivers whatever fn queued.
func (e *Editor) do(fn func()) {
	e.mu.Lock()
	fn()
	pending, mgr := e.pending, e.eventManager
	e.pending = nil
	e.mu.Unlock()

	if mgr == nil {
		return
	}
	for _, n := range pending {
		mgr.Dispatch(n.typ, n.data)
	}
}

func (e *Editor) notify(t event.Type, data interface{}) {
	e.pending = append(e.pending, notification{typ: t, data: data})
}

// policy resolves the configured wrap width against the current view.
func (e *Editor) policy() layout.Policy {
	p := layout.Policy{TabWidth: e.opts.TabWidth, WordWrap: e.opts.WordWrap}
	switch {
	case e.opts.WrapWidth > 0:
		p.Width = e.opts.WrapWidth
	case e.opts.WrapWidth == 0:
		p.Width = e.viewWidth
	}
	return p
}

func (e *Editor) softWrap() bool {
	return e.policy().Width > 0
}

// relayout rebuilds the line index if anything changed since the last pass.
func (e *Editor) relayout() *layout.Layout {
	if e.stale || e.layout == nil {
		e.layout = layout.Build(e.buffer, e.policy())
		e.stale = false
	}
	return e.layout
}

func (e *Editor) cursorPosition() types.Position {
	l := e.relayout()
	return types.Position{Line: l.CursorLine, Col: l.CursorX}
}

// contentChanged marks the document edited and queues a modification event.
func (e *Editor) contentChanged() {
	e.modified = true
	e.stale = true
	e.scrollToCursor()
	e.notify(event.TypeBufferModified, event.BufferModifiedData{
		Cursor: e.cursorPosition(),
		Length: len(e.layout.Cells),
	})
}

// cursorMoved queues a cursor event after a pure movement.
func (e *Editor) cursorMoved() {
	e.stale = true
	e.scrollToCursor()
	e.notify(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.cursorPosition()})
}

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width != e.viewWidth && e.opts.WrapWidth == 0 {
		e.stale = true
	}
	e.viewWidth = width
	if height > config.StatusBarHeight {
		e.viewHeight = height - config.StatusBarHeight
	} else {
		e.viewHeight = 0
	}

	e.scrollOff = e.opts.ScrollOff
	if e.scrollOff*2 >= e.viewHeight && e.viewHeight > 0 {
		e.scrollOff = (e.viewHeight - 1) / 2
	} else if e.viewHeight <= 0 {
		e.scrollOff = 0
	}

	e.scrollToCursor()
}

// scrollToCursor adjusts the viewport so the cursor line stays at least
// scrollOff lines away from the top and bottom edges.
func (e *Editor) scrollToCursor() {
	if e.viewHeight <= 0 {
		return
	}
	l := e.relayout()
	row := l.CursorLine - 1

	if row < e.viewportY+e.scrollOff {
		e.viewportY = row - e.scrollOff
	} else if row > e.viewportY+e.viewHeight-1-e.scrollOff {
		e.viewportY = row - (e.viewHeight - 1 - e.scrollOff)
	}

	maxViewportY := l.MaxLine - e.viewHeight
	if e.viewportY > maxViewportY {
		e.viewportY = maxViewportY
	}
	if e.viewportY < 0 {
		e.viewportY = 0
	}

	if e.softWrap() {
		e.viewportX = 0
		return
	}
	if l.CursorX < e.viewportX {
		e.viewportX = l.CursorX
	} else if e.viewWidth > 0 && l.CursorX >= e.viewportX+e.viewWidth {
		e.viewportX = l.CursorX - e.viewWidth + 1
	}
}

// Viewport returns the number of lines and columns scrolled out of view.
func (e *Editor) Viewport() (y, x int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewportY, e.viewportX
}

// ViewHeight is the number of text rows available for drawing.
func (e *Editor) ViewHeight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewHeight
}

// Layout rebuilds the line index if needed and returns the current layout.
// The returned value is never mutated and may be read without the lock.
func (e *Editor) Layout() *layout.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.relayout()
}

// GetCursor returns the cursor's screen position.
func (e *Editor) GetCursor() types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursorPosition()
}

// Text returns the whole document.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.String()
}

// LineCount returns the number of lines in the last layout.
func (e *Editor) LineCount() int {
	return e.Layout().MaxLine
}

func (e *Editor) FilePath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filePath
}

func (e *Editor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modified
}

// CanUndo reports whether Undo has anything to revert.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// Load replaces the document with the contents of path. A missing file is
// created. On error the current document is left untouched.
func (e *Editor) Load(path string) error {
	buf := buffer.NewRingBuffer()
	if err := storage.Load(path, func(r rune) { buf.InsertAfterCursor(r) }); err != nil {
		return err
	}
	buf.SetCursorToHead()

	e.do(func() {
		e.buffer = buf
		e.history = history.NewManager(buf, e.opts.HistoryLimit)
		e.selection.Clear()
		e.filePath = path
		e.modified = false
		e.stale = true
		e.viewportY, e.viewportX = 0, 0
		logger.Infof("Editor: Loaded '%s' (%d characters)", path, buf.Len())
		e.notify(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	})
	return nil
}

// Save writes the document to path, or to the current file when path is empty.
func (e *Editor) Save(path string) error {
	var err error
	e.do(func() {
		if path == "" {
			path = e.filePath
		}
		if path == "" {
			err = fmt.Errorf("no file path specified for saving")
			return
		}

		w := e.buffer.NewTraversal()
		if err = storage.Save(path, w.Advance); err != nil {
			return
		}
		e.filePath = path
		e.modified = false
		logger.Infof("Editor: Saved '%s'", path)
		e.notify(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	})
	return err
}
