package ui

import "github.com/fatih/color"

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

var (
	alert = color.New(color.FgHiYellow, color.Bold)
	faint = color.New(color.Faint)
)

// Alert renders s as a bold warning, e.g. the OVERFLOW marker of a result.
// It returns s unchanged when colors are off.
func Alert(s string) string {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return s
	}
	return alert.Sprint(s)
}

// Faint renders s dimmed, for leading zero padding of fixed-width hex.
func Faint(s string) string {
	if GetCurrentTheme().Name == NoColorTheme.Name || s == "" {
		return s
	}
	return faint.Sprint(s)
}

// ColorProvider adapts the current theme to apperrors.ColorProvider.
type ColorProvider struct{}

// Yellow returns the warning color.
func (ColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset code.
func (ColorProvider) Reset() string { return ColorReset() }
