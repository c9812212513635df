package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppTheme tints the status colours and tightens padding on top of the
// default theme
type AppTheme struct{}

// NewAppTheme creates the application theme
func NewAppTheme() fyne.Theme {
	return &AppTheme{}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 204, G: 32, B: 32, A: 255}
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputRadius:
		return 3
	}
	return theme.DefaultTheme().Size(name)
}
