// Package plugintest provides an in-memory EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/plugin"
	"github.com/bethropolis/textring/internal/types"
)

var _ plugin.EditorAPI = (*FakeAPI)(nil)

// FakeAPI records what plugins do with the editor. Fields may be set
// directly before a plugin is initialized; use the accessors afterwards.
type FakeAPI struct {
	mu sync.Mutex

	Text     string
	FilePath string
	Modified bool
	Cursor   types.Position
	SaveErr  error
	Config   map[string]map[string]interface{}

	Commands map[string]plugin.CommandFunc
	Events   *event.Manager

	saves    int
	messages []string
}

// NewFakeAPI returns a FakeAPI with its own event manager.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Commands: make(map[string]plugin.CommandFunc),
		Events:   event.NewManager(),
		Config:   make(map[string]map[string]interface{}),
	}
}

func (f *FakeAPI) GetText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Text
}

func (f *FakeAPI) GetLineCount() int { return 1 }

func (f *FakeAPI) GetBufferFilePath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.FilePath
}

func (f *FakeAPI) IsBufferModified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Modified
}

// SetModified flips the modified flag while a plugin may be running.
func (f *FakeAPI) SetModified(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Modified = m
}

func (f *FakeAPI) SaveBuffer() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Modified = false
	return nil
}

// Saves returns how many times SaveBuffer was called.
func (f *FakeAPI) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *FakeAPI) GetCursor() types.Position { return f.Cursor }

func (f *FakeAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	f.Events.Subscribe(eventType, handler)
}

func (f *FakeAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.Commands[name] = cmdFunc
	return nil
}

func (f *FakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

// Messages returns every status message set so far.
func (f *FakeAPI) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *FakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := f.Config[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
