package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightRed
	ColorBrightMagenta
	ColorBrightCyan
)

// TileColors is the palette tiles cycle through as their value grows.
var TileColors = []Color{
	ColorWhite,
	ColorYellow,
	ColorOrange,
	ColorRed,
	ColorMagenta,
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorBrightYellow,
	ColorBrightRed,
	ColorBrightMagenta,
	ColorBrightCyan,
}
