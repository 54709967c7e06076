// internal/theme/theme.go
package theme

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/textring/internal/logger"
)

// Style names used by the UI.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the base name (the
// part before the first dot), then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}
	if style, ok := t.Styles[StyleDefault]; ok {
		return style
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Dark is the default theme.
var Dark = func() Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	yellow := tcell.NewHexColor(0xe5c07b)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name:   "dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
		},
	}
}()

// Light suits terminals with a pale background.
var Light = func() Theme {
	bg := tcell.NewHexColor(0xd7dae0)
	fg := tcell.NewHexColor(0x383a42)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	return Theme{
		Name: "light",
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Background(tcell.NewHexColor(0xbfceff)),
			StyleStatusBar:         tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bg).Foreground(tcell.NewHexColor(0x986801)),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
		},
	}
}()

var builtins = map[string]*Theme{
	Dark.Name:  &Dark,
	Light.Name: &Light,
}

// Builtin looks up a compiled-in theme by case-insensitive name.
func Builtin(name string) (*Theme, bool) {
	t, ok := builtins[strings.ToLower(name)]
	return t, ok
}

// BuiltinNames lists the compiled-in themes.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
