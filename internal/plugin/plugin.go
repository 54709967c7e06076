// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI is the slice of the editor that plugins may use.
type EditorAPI interface {
	// --- Document ---
	GetText() string
	GetLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool
	SaveBuffer() error
	GetCursor() types.Position

	// --- Event Bus Interaction ---
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	// GetPluginConfigValue reads key from the [plugins.<pluginName>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
