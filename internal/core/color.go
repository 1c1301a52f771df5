package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes via Code.
type Color uint8

// Palette used by the playfield and panels.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorGray
	ColorBrightWhite
)

var colorCodes = [...]string{
	ColorDefault:     "",
	ColorRed:         "9",
	ColorGreen:       "10",
	ColorYellow:      "11",
	ColorBlue:        "12",
	ColorMagenta:     "13",
	ColorCyan:        "14",
	ColorWhite:       "7",
	ColorOrange:      "208",
	ColorPurple:      "135",
	ColorGray:        "245",
	ColorBrightWhite: "15",
}

// Code returns the ANSI 256-color code, or "" for the terminal default.
func (c Color) Code() string {
	if int(c) >= len(colorCodes) {
		return ""
	}
	return colorCodes[c]
}
