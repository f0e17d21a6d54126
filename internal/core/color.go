package core

// Color is a foreground color for a screen cell. The platform layer maps
// each value to an ANSI 256-color code.
type Color uint8

// Palette used by the bee game.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorBrightRed
	ColorCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
