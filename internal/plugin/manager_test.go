package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(api EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestRegisterRejectsBadNames(t *testing.T) {
	var log []string
	m := NewManager()

	require.NoError(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "", log: &log}))

	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
	_, ok = m.GetPlugin("b")
	assert.False(t, ok)
}

func TestLifecycleOrder(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "second", log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "first", initErr: errors.New("boom"), log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "third", log: &log}))

	m.InitializePlugins(nil)
	m.ShutdownPlugins()

	assert.Equal(t, []string{
		"init second", "init first", "init third",
		"shutdown third", "shutdown first", "shutdown second",
	}, log, "a failing plugin does not stop the others")
	assert.Equal(t, []string{"first", "second", "third"}, m.Names())
}
