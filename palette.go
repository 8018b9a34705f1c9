package vgatext

import "fmt"

// Color is a 4-bit index into the VGA text mode palette.
// The order follows the hardware, which differs from the ANSI order
// by having the red and blue bits swapped.
type Color uint8

const (
	Black        Color = iota // black
	Blue                      // blue
	Green                     // green
	Cyan                      // cyan
	Red                       // red
	Magenta                   // magenta
	Brown                     // brown, the dim variant of yellow
	LightGrey                 // light grey
	DarkGrey                  // dark grey, the bright variant of black
	LightBlue                 // light blue
	LightGreen                // light green
	LightCyan                 // light cyan
	LightRed                  // light red
	LightMagenta              // light magenta
	Yellow                    // yellow
	White                     // white
)

const nibble = 0x0f

var colorNames = [16]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "light grey",
	"dark grey", "light blue", "light green", "light cyan", "light red", "light magenta", "yellow", "white",
}

// Hex color code represented as a hexadecimal numeric value without the leading #.
// Like CSS, the 3 digit values are shortened forms of RRGGBB,
// so the CGA red "aa0000" is written as "a00".
type Hex string

// CGA returns the Color Graphics Adapter colorset defined by IBM for the PC in 1981,
// indexed in VGA palette order.
func CGA() [16]Hex {
	return [16]Hex{
		"000", "00a", "0a0", "0aa", "a00", "a0a", "a50", "aaa",
		"555", "55f", "5f5", "5ff", "f55", "f5f", "ff5", "fff",
	}
}

// BG returns the CSS background-color property and color value.
func (h Hex) BG() string {
	if h == "" {
		return ""
	}
	return "background-color:#" + string(h) + ";"
}

// FG returns the CSS color property and color value.
func (h Hex) FG() string {
	if h == "" {
		return ""
	}
	return "color:#" + string(h) + ";"
}

// Hex returns the CGA color value of c.
func (c Color) Hex() Hex {
	return CGA()[c&nibble]
}

// ANSI returns the ANSI 4-bit color code of c, a value between 0 and 15
// where 8 and above are the bright variants.
//
//nolint:mnd
func (c Color) ANSI() int {
	c &= nibble
	return int(c&0x8 | c&0x2 | (c&0x1)<<2 | (c&0x4)>>2)
}

// Bright reports whether c is one of the 8 lighter palette entries.
func (c Color) Bright() bool {
	return c&nibble >= DarkGrey
}

func (c Color) String() string {
	if c > White {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Attribute is the color byte stored alongside every character in the framebuffer.
// The foreground color is held in the low nibble and the background in the high nibble.
type Attribute uint8

// DefaultAttribute is the white on black attribute used to clear the screen.
const DefaultAttribute = Attribute(Black<<4 | White)

// MakeAttribute combines a foreground and background color into an Attribute.
// Only the low 4 bits of each color are used.
func MakeAttribute(fg, bg Color) Attribute {
	return Attribute((bg&nibble)<<4 | fg&nibble)
}

// FG returns the foreground color.
func (a Attribute) FG() Color {
	return Color(a) & nibble
}

// BG returns the background color.
func (a Attribute) BG() Color {
	return Color(a>>4) & nibble
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s on %s", a.FG(), a.BG())
}
