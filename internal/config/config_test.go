package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().Editor, cfg.Editor)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"

[editor]
tab_width = 8
wrap_width = -1
word_wrap = false

[plugins.autosave]
enabled = true
interval = "30s"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, -1, cfg.Editor.WrapWidth)
	assert.False(t, cfg.Editor.WordWrap)
	assert.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff, "absent keys keep defaults")
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)

	v, ok := cfg.PluginValue("autosave", "interval")
	require.True(t, ok)
	assert.Equal(t, "30s", v)
	_, ok = cfg.PluginValue("wordcount", "enabled")
	assert.False(t, ok)
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 0
scroll_off = -4
history_limit = -1
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff)
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)
}

func TestLoadReportsBadFiles(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[editor\ntab_width = "), nil)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)

	cfg, err = Load(writeConfig(t, "[editor]\ntab_widht = 2\n"), nil)
	assert.ErrorContains(t, err, "tab_widht")
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\nscroll_off = 2\n")

	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args, err := f.ParseFlags(fs, []string{"-tabwidth", "2", "-wrap", "-1", "-log-tags", "layout, core,", "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, args)

	cfg, err := Load(path, &f)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, -1, cfg.Editor.WrapWidth)
	assert.Equal(t, 2, cfg.Editor.ScrollOff, "unset flags leave the file value")
	assert.Equal(t, []string{"layout", "core"}, cfg.Logger.EnabledTags)
}
