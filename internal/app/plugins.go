package app

import (
	"github.com/bethropolis/textring/internal/logger"
	"github.com/bethropolis/textring/internal/plugin"
	"github.com/bethropolis/textring/plugins/autosave"
	"github.com/bethropolis/textring/plugins/wordcount"
)

// registerPlugins registers the app commands and the built-in plugins.
// InitializePlugins runs them afterwards.
func (a *App) registerPlugins() {
	a.registerAppCommands()
	for _, p := range []plugin.Plugin{wordcount.New(), autosave.New()} {
		if err := a.pluginManager.Register(p); err != nil {
			logger.Errorf("Failed to register plugin '%s': %v", p.Name(), err)
		}
	}
}
