// Package vgatext writes characters and color attributes into an 80x25 VGA text mode framebuffer.
//
// The framebuffer is a row-major grid of cells, where every cell is a pair of bytes,
// the character followed by its color [Attribute].
// A [Framebuffer] handle wraps either an in-memory region of the same layout,
// or the memory mapped hardware region when running as a freestanding kernel.
package vgatext

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/text/encoding/charmap"
)

var (
	ErrSize        = errors.New("framebuffer region is too small")
	ErrOutOfBounds = errors.New("out of bounds")
	ErrCharset     = errors.New("character is not in the charset")
)

const (
	Width    = 80 // Width is the number of columns
	Height   = 25 // Height is the number of rows
	CellSize = 2  // CellSize is the number of bytes used by a cell

	// Size is the number of bytes in the framebuffer region.
	Size = CellSize * Width * Height

	// PhysAddr is the physical address of the color text mode buffer on PC hardware.
	PhysAddr uintptr = 0xb8000

	// Blank is the character written to every cell by Clear.
	Blank = ' '
)

// Framebuffer is a bounds checked handle to a text mode framebuffer region.
// It is not safe for concurrent use.
//
// The zero value is not usable, a Framebuffer must be created with
// [New], [NewMemory] or [MapPhysical].
type Framebuffer struct {
	mem     []byte
	charset *charmap.Charmap
}

// Cell is the content of a single character position.
type Cell struct {
	Char    byte      // Char is the code page encoded character
	Attr    Attribute // Attr is the color attribute
	charset *charmap.Charmap
}

// Rune returns the character decoded from the framebuffer charset.
// The null character is displayed by the hardware as a blank and is returned as [Blank].
func (c Cell) Rune() rune {
	if c.charset == nil {
		return glyph(charmap.CodePage437, c.Char)
	}
	return glyph(c.charset, c.Char)
}

// glyph decodes b as it is drawn on screen.
func glyph(charset *charmap.Charmap, b byte) rune {
	if b == 0 {
		return Blank
	}
	return charset.DecodeByte(b)
}

// New returns a Framebuffer that uses the first [Size] bytes of mem as its region.
//
// Generally the charset should be [charmap.CodePage437], which matches the font
// stored in the VGA ROM. A nil charset uses Code Page 437.
func New(mem []byte, charset *charmap.Charmap) (*Framebuffer, error) {
	if len(mem) < Size {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrSize, len(mem), Size)
	}
	if charset == nil {
		charset = charmap.CodePage437
	}
	return &Framebuffer{
		mem:     mem[:Size:Size],
		charset: charset,
	}, nil
}

// NewMemory returns a Framebuffer backed by a newly allocated region
// using Code Page 437.
func NewMemory() *Framebuffer {
	return &Framebuffer{
		mem:     make([]byte, Size),
		charset: charmap.CodePage437,
	}
}

// MapPhysical returns a Framebuffer over the hardware region at [PhysAddr].
// It is only valid in a freestanding kernel where that address is identity mapped,
// any hosted process that writes to the returned handle will crash.
func MapPhysical() *Framebuffer {
	mem := unsafe.Slice((*byte)(unsafe.Pointer(PhysAddr)), Size) //nolint:govet
	return &Framebuffer{
		mem:     mem,
		charset: charmap.CodePage437,
	}
}

// CellOffset returns the row-major index of the cell at column x and row y.
func CellOffset(x, y int) int {
	return y*Width + x
}

// ByteOffset returns the offset of the character byte of the cell at column x and row y.
// The attribute byte follows at ByteOffset + 1.
func ByteOffset(x, y int) int {
	return CellSize * CellOffset(x, y)
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Clear writes a blank character using the [DefaultAttribute] to every cell.
func (fb *Framebuffer) Clear() {
	for i := 0; i < Size; i += CellSize {
		fb.mem[i] = Blank
		fb.mem[i+1] = byte(DefaultAttribute)
	}
}

// WriteString writes text starting at column x and row y, with every character
// using the attr color. Text never wraps onto the next row.
//
// If the position is outside the grid, or the text would run past the end of the row,
// an ErrOutOfBounds error is returned. If text contains a rune that the charset cannot
// encode, an ErrCharset error is returned. In both cases nothing is written.
func (fb *Framebuffer) WriteString(text string, x, y int, attr Attribute) error {
	if !inside(x, y) {
		return fmt.Errorf("write at column %d, row %d: %w", x, y, ErrOutOfBounds)
	}
	p, err := fb.encode(text)
	if err != nil {
		return err
	}
	if x+len(p) > Width {
		return fmt.Errorf("write of %d characters at column %d, row %d: %w",
			len(p), x, y, ErrOutOfBounds)
	}
	offset := ByteOffset(x, y)
	for i, b := range p {
		fb.mem[offset+i*CellSize] = b
		fb.mem[offset+i*CellSize+1] = byte(attr)
	}
	return nil
}

// encode converts text into single byte characters of the charset.
func (fb *Framebuffer) encode(text string) ([]byte, error) {
	p := make([]byte, 0, len(text))
	for i, r := range text {
		b, ok := fb.charset.EncodeRune(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q at index %d", ErrCharset, r, i)
		}
		p = append(p, b)
	}
	return p, nil
}

// Cell returns the content of the cell at column x and row y.
func (fb *Framebuffer) Cell(x, y int) (Cell, error) {
	if !inside(x, y) {
		return Cell{}, fmt.Errorf("cell at column %d, row %d: %w", x, y, ErrOutOfBounds)
	}
	i := ByteOffset(x, y)
	return Cell{
		Char:    fb.mem[i],
		Attr:    Attribute(fb.mem[i+1]),
		charset: fb.charset,
	}, nil
}

// Row returns the decoded characters of row y, including any trailing blanks.
// Null characters are returned as [Blank].
func (fb *Framebuffer) Row(y int) (string, error) {
	if y < 0 || y >= Height {
		return "", fmt.Errorf("row %d: %w", y, ErrOutOfBounds)
	}
	var b strings.Builder
	for x := range Width {
		b.WriteRune(glyph(fb.charset, fb.mem[ByteOffset(x, y)]))
	}
	return b.String(), nil
}

// Bytes returns a copy of the framebuffer region.
func (fb *Framebuffer) Bytes() []byte {
	p := make([]byte, Size)
	copy(p, fb.mem)
	return p
}
