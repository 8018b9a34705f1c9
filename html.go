package vgatext

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
)

// run is a contiguous sequence of characters in a row that share an attribute.
type run struct {
	Attr Attribute
	Text string
}

// runs splits row y into runs of identical attributes.
// Trailing blank or null cells on a black background are dropped,
// as they look the same as a cleared screen.
func (fb *Framebuffer) runs(y int) []run {
	end := Width
	for end > 0 {
		i := ByteOffset(end-1, y)
		if glyph(fb.charset, fb.mem[i]) != Blank || Attribute(fb.mem[i+1]).BG() != Black {
			break
		}
		end--
	}
	out := []run{}
	var b strings.Builder
	var last Attribute
	for x := range end {
		i := ByteOffset(x, y)
		attr := Attribute(fb.mem[i+1])
		if x > 0 && attr != last {
			out = append(out, run{Attr: last, Text: b.String()})
			b.Reset()
		}
		last = attr
		b.WriteRune(glyph(fb.charset, fb.mem[i]))
	}
	if b.Len() > 0 {
		out = append(out, run{Attr: last, Text: b.String()})
	}
	return out
}

// Text returns the characters of every row joined with newlines,
// with trailing spaces removed from each row.
func (fb *Framebuffer) Text() string {
	rows := make([]string, Height)
	for y := range Height {
		s, _ := fb.Row(y)
		rows[y] = strings.TrimRight(s, " ")
	}
	return strings.Join(rows, "\n")
}

// Lines renders each framebuffer row into a single HTML string.
// Each contiguous run of identical attributes is wrapped in a <span style="...">.
func (fb *Framebuffer) Lines() []string {
	out := make([]string, 0, Height)
	for y := range Height {
		var b strings.Builder
		for _, r := range fb.runs(y) {
			b.WriteString(`<span style="`)
			b.WriteString(html.EscapeString(buildStyle(r.Attr)))
			b.WriteString(`">`)
			// escape text but preserve spaces
			b.WriteString(html.EscapeString(r.Text))
			b.WriteString(`</span>`)
		}
		out = append(out, b.String())
	}
	return out
}

// WriteHTML writes to w the full HTML fragment with an outer div using the
// DefaultAttribute colors and the inner lines joined with newlines.
func (fb *Framebuffer) WriteHTML(w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	t, err := template.New("vga").Parse(
		`{{define "T"}}<div style="` + buildStyle(DefaultAttribute) + `">{{ . }}</div>{{end}}`)
	if err != nil {
		return fmt.Errorf("write template parse: %w", err)
	}
	if err := t.ExecuteTemplate(w, "T",
		template.HTML(strings.Join(fb.Lines(), "\n"))); err != nil { //nolint:gosec
		return fmt.Errorf("write template execute: %w", err)
	}
	return nil
}

// HTML returns the HTML fragment that WriteHTML writes.
func (fb *Framebuffer) HTML() (string, error) {
	var b bytes.Buffer
	out := bufio.NewWriter(&b)
	if err := fb.WriteHTML(out); err != nil {
		return "", err
	}
	if err := out.Flush(); err != nil {
		return "", fmt.Errorf("html out flush: %w", err)
	}
	return b.String(), nil
}

// buildStyle takes the Attribute and returns a HTML style attribute.
func buildStyle(a Attribute) string {
	return a.FG().Hex().FG() + a.BG().Hex().BG()
}
