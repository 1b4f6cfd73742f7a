// Package ui holds the color themes shared by the CLI, the REPL and the
// usage text. Themes are plain ANSI escape strings so that output can be
// composed with fmt; emphasis helpers go through github.com/fatih/color.
package ui

import (
	"os"
	"sync"

	"github.com/fatih/color"
)

// Theme defines a color scheme for terminal output.
type Theme struct {
	// Name is the identifier of the theme ("dark", "light" or "none").
	Name string
	// Primary highlights operation names and labels.
	Primary string
	// Secondary is used for hexadecimal digits and defaults.
	Secondary string
	// Success marks results that fit the layout.
	Success string
	// Warning marks overflowed results and timings.
	Warning string
	// Error marks failures.
	Error string
	// Info is used for layout descriptions.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

const esc = "\033["

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   esc + "38;5;39m",
		Secondary: esc + "38;5;245m",
		Success:   esc + "38;5;82m",
		Warning:   esc + "38;5;220m",
		Error:     esc + "38;5;196m",
		Info:      esc + "38;5;141m",
		Bold:      esc + "1m",
		Underline: esc + "4m",
		Reset:     esc + "0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   esc + "38;5;27m",
		Secondary: esc + "38;5;240m",
		Success:   esc + "38;5;28m",
		Warning:   esc + "38;5;130m",
		Error:     esc + "38;5;124m",
		Info:      esc + "38;5;54m",
		Bold:      esc + "1m",
		Underline: esc + "4m",
		Reset:     esc + "0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
	color.NoColor = t.Name == NoColorTheme.Name
}

// SetTheme activates a theme by name. Unknown names select the dark theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme picks the theme at startup. Colors are disabled by the noColor
// flag or by the presence of NO_COLOR in the environment (https://no-color.org/),
// whatever its value.
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
