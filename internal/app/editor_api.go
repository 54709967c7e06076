// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/textring/internal/event"
	"github.com/bethropolis/textring/internal/plugin"
	"github.com/bethropolis/textring/internal/types"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is what plugins see of the application.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) GetText() string {
	return api.app.editor.Text()
}

func (api *appEditorAPI) GetLineCount() int {
	return api.app.editor.LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.IsModified()
}

// SaveBuffer saves to the current file path.
func (api *appEditorAPI) SaveBuffer() error {
	return api.app.editor.Save("")
}

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
