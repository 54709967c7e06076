package app

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/internal/plugin"
	"github.com/bethropolis/textring/internal/theme"
)

// commandRegistry holds named commands registered by plugins and the app.
type commandRegistry struct {
	mu       sync.RWMutex
	commands map[string]plugin.CommandFunc
}

func newCommandRegistry() *commandRegistry {
	return &commandRegistry{commands: make(map[string]plugin.CommandFunc)}
}

func (r *commandRegistry) Register(name string, fn plugin.CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("command registration needs a name and a function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.DebugTagf("app", "Registered command '%s'", name)
	return nil
}

// Run executes the named command.
func (r *commandRegistry) Run(name string, args []string) error {
	r.mu.RLock()
	fn, ok := r.commands[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown command '%s'", name)
	}
	if err := fn(args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *commandRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerAppCommands registers the built-in commands.
func (a *App) registerAppCommands() {
	themes := func(args []string) error {
		a.SetStatusMessage("Theme: %s (built-in: %s)", a.tuiManager.Theme().Name, strings.Join(theme.BuiltinNames(), ", "))
		return nil
	}
	save := func(args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return a.editor.Save(path)
	}
	for name, fn := range map[string]plugin.CommandFunc{"themes": themes, "w": save} {
		if err := a.commands.Register(name, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}
