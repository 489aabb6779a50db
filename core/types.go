package core

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
	ColorRed     = Color{1, 0, 0, 1}
	ColorGreen   = Color{0, 1, 0, 1}
	ColorBlue    = Color{0, 0, 1, 1}
	ColorYellow  = Color{1, 1, 0, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorCyan    = Color{0, 1, 1, 1}
	ColorGrey    = Color{0.5, 0.5, 0.5, 1}
)

// Palette is the fixed set of node colors, addressed by color index.
var Palette = [...]Color{
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorMagenta,
	ColorCyan,
	ColorWhite,
	ColorGrey,
}

const (
	MinColorIndex = 0
	MaxColorIndex = len(Palette) - 1
)

// PaletteColor returns the palette entry for index, wrapping out-of-range
// values onto the palette.
func PaletteColor(index int) Color {
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

// Emission is the light a selected node emits while drawn.
var Emission = Color{0.3, 0.3, 0.3, 1}
