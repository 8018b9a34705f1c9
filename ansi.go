package vgatext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	ESC = 0x1b                    // ESC is the escape control character code
	CSI = string(rune(ESC)) + "[" // CSI is the control sequence introducer

	Reset       = 0   // Reset is the SGR parameter that restores the default attributes
	FG1st       = 30  // FG1st is the SGR parameter of the first foreground color
	BG1st       = 40  // BG1st is the SGR parameter of the first background color
	BrightFG1st = 90  // BrightFG1st is the SGR parameter of the first bright foreground color
	BrightBG1st = 100 // BrightBG1st is the SGR parameter of the first bright background color
)

// SGR returns the Select Graphic Rendition escape sequence that sets
// the foreground and background colors of the attribute.
func SGR(a Attribute) string {
	return CSI + strconv.Itoa(Reset) +
		";" + strconv.Itoa(sgrColor(a.FG(), FG1st, BrightFG1st)) +
		";" + strconv.Itoa(sgrColor(a.BG(), BG1st, BrightBG1st)) + "m"
}

//nolint:mnd
func sgrColor(c Color, first, bright int) int {
	code := c.ANSI()
	if code >= 8 {
		return bright + code - 8
	}
	return first + code
}

// WriteANSI writes to w every framebuffer row as UTF-8 text colored with ANSI escape sequences.
// Trailing blank cells that use the DefaultAttribute are not written,
// and every row that contains text ends with a reset sequence.
func (fb *Framebuffer) WriteANSI(w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	out := bufio.NewWriter(w)
	for y := range Height {
		runs := fb.runs(y)
		for _, r := range runs {
			if _, err := out.WriteString(SGR(r.Attr) + r.Text); err != nil {
				return fmt.Errorf("ansi write: %w", err)
			}
		}
		end := "\n"
		if len(runs) > 0 {
			end = CSI + strconv.Itoa(Reset) + "m\n"
		}
		if _, err := out.WriteString(end); err != nil {
			return fmt.Errorf("ansi write: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("ansi out flush: %w", err)
	}
	return nil
}
