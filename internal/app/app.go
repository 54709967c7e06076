// internal/app/app.go
package app

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/textring/internal/config"
	"github.com/bethropolis/textring/internal/core"
	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/input"
	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/internal/plugin"
	"github.com/bethropolis/textring/internal/statusbar"
	"github.com/bethropolis/textring/internal/theme"
	"github.com/bethropolis/textring/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	editor         *core.Editor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	pluginManager  *plugin.Manager
	inputProcessor *input.InputProcessor
	commands       *commandRegistry
	editorAPI      plugin.EditorAPI

	// Input state, touched only by the event loop.
	forceQuitPending bool
	dragging         bool
	pasting          bool
	pasteBuf         []rune

	quit          chan struct{}
	quitOnce      sync.Once
	redrawRequest chan struct{}
}

// Option adjusts how NewApp builds the application.
type Option func(*options)

type options struct {
	screen tcell.Screen
}

// WithScreen draws on s instead of the real terminal.
func WithScreen(s tcell.Screen) Option {
	return func(o *options) { o.screen = s }
}

// NewApp creates the editor, loads filePath (if any) and starts the plugins.
func NewApp(cfg *config.Config, filePath string, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	activeTheme, err := theme.Resolve(cfg.Editor.Theme, config.ThemesDir())
	if err != nil {
		logger.Warnf("App: %v; using the default theme", err)
		activeTheme = &theme.Dark
	}

	var tuiManager *tui.TUI
	if o.screen != nil {
		tuiManager, err = tui.NewWithScreen(o.screen, activeTheme)
	} else {
		tuiManager, err = tui.New(activeTheme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	editor := core.NewEditor(core.OptionsFromConfig(cfg.Editor))
	if filePath != "" {
		if err := editor.Load(filePath); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("failed to open '%s': %w", filePath, err)
		}
	}

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		editor:         editor,
		statusBar:      statusbar.New(statusbar.ConfigFromTheme(activeTheme, config.MessageTimeout)),
		eventManager:   event.NewManager(),
		pluginManager:  plugin.NewManager(),
		inputProcessor: input.NewInputProcessor(),
		commands:       newCommandRegistry(),
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}
	a.editorAPI = newEditorAPI(a)
	editor.SetEventManager(a.eventManager)

	a.subscribeStatusHandlers()
	a.registerPlugins()
	a.pluginManager.InitializePlugins(a.editorAPI)

	width, height := tuiManager.Size()
	editor.SetViewSize(width, height)
	return a, nil
}

// Run starts the application's event and drawing loops and blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s - Ctrl+S Save | Ctrl+Z/Ctrl+Y Undo/Redo | Esc Quit", config.AppName)
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			logger.Infof("App: Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop reads terminal events until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent processes one terminal event and reports whether the screen
// needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		width, height := a.tuiManager.Size()
		a.editor.SetViewSize(width, height)
		return true
	case *tcell.EventPaste:
		return a.handlePaste(ev)
	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return false
		}
		return a.handleKey(ev)
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	}
	return false
}

func (a *App) drawEditor() {
	width, height := a.tuiManager.Size()
	a.editor.SetViewSize(width, height)
	a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor(), a.editor.LineCount())
	tui.Draw(a.tuiManager, a.editor, a.statusBar.Draw)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // a redraw is already pending
	}
}

// requestQuit stops Run. Safe to call more than once.
func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// SetStatusMessage shows a temporary message and redraws.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}

// Editor exposes the editor, mainly for tests and the entry point.
func (a *App) Editor() *core.Editor {
	return a.editor
}
