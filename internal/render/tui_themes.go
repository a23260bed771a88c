package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name        string
	Description string

	Border lipgloss.Color

	Primary   lipgloss.Color // assistant
	Secondary lipgloss.Color // user
	Accent    lipgloss.Color // loading
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultTUITheme is used when no theme, or an unknown one, is configured
const DefaultTUITheme = "tokyonight"

var tuiThemes = map[string]TUITheme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",
		Border:      lipgloss.Color("#414868"),
		Primary:     lipgloss.Color("#7aa2f7"),
		Secondary:   lipgloss.Color("#9ece6a"),
		Accent:      lipgloss.Color("#bb9af7"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
	},
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Gruvbox - warm retro dark",
		Border:      lipgloss.Color("#504945"),
		Primary:     lipgloss.Color("#83a598"),
		Secondary:   lipgloss.Color("#b8bb26"),
		Accent:      lipgloss.Color("#fe8019"),
		Error:       lipgloss.Color("#fb4934"),
		Text:        lipgloss.Color("#ebdbb2"),
		TextDim:     lipgloss.Color("#928374"),
		TextMute:    lipgloss.Color("#665c54"),
	},
	"solarized": {
		Name:        "solarized",
		Description: "Solarized Light - low contrast light",
		Border:      lipgloss.Color("#93a1a1"),
		Primary:     lipgloss.Color("#268bd2"),
		Secondary:   lipgloss.Color("#859900"),
		Accent:      lipgloss.Color("#d33682"),
		Error:       lipgloss.Color("#dc322f"),
		Text:        lipgloss.Color("#586e75"),
		TextDim:     lipgloss.Color("#839496"),
		TextMute:    lipgloss.Color("#eee8d5"),
	},
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = tuiThemes[DefaultTUITheme]
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name. Unknown names are rejected.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[name]
	return theme, ok
}

// TUIThemeNames returns the theme names in sorted order
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
