package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Player palette
var (
	ColorGold       = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	ColorInfoBack   = color.NRGBA{A: 217} // 0.85 black
	ColorCurtain    = color.NRGBA{A: 204} // 0.8 black
	ColorCardBack   = color.NRGBA{R: 255, G: 255, B: 255, A: 38}
	ColorCardBorder = color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	ColorLyricsText = color.NRGBA{R: 255, G: 255, B: 255, A: 242}
)

// JukeboxTheme is a dark theme with compact padding for the fixed-size player
type JukeboxTheme struct{}

// NewJukeboxTheme creates the player theme
func NewJukeboxTheme() fyne.Theme {
	return &JukeboxTheme{}
}

// Color returns theme colors. The player is always dark.
func (t *JukeboxTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNamePrimary:
		return ColorGold
	case theme.ColorNameBackground:
		return color.RGBA{R: 18, G: 18, B: 18, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *JukeboxTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *JukeboxTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *JukeboxTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
