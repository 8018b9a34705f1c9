package vgatext_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bengarrett/vgatext"
	"github.com/nalgeon/be"
)

func ExampleSGR() {
	fmt.Printf("%q\n", vgatext.SGR(vgatext.MakeAttribute(vgatext.LightGreen, vgatext.Black)))
	fmt.Printf("%q\n", vgatext.SGR(vgatext.MakeAttribute(vgatext.Brown, vgatext.LightBlue)))
	// Output: "\x1b[0;92;40m"
	// "\x1b[0;33;104m"
}

func TestWriteANSI(t *testing.T) {
	t.Parallel()
	k, err := vgatext.NewKernel(vgatext.NewMemory(), nil)
	be.Err(t, err, nil)
	be.Err(t, k.Main(), nil)

	var b bytes.Buffer
	be.Err(t, k.Framebuffer().WriteANSI(&b), nil)
	rows := strings.Split(b.String(), "\n")
	be.Equal(t, len(rows), vgatext.Height+1)
	be.Equal(t, rows[0], "\x1b[0;92;40mGORILLA MODE\x1b[0m")
	be.Equal(t, rows[1], "\x1b[0;96;40mScreen cleared\x1b[0m")
	be.Equal(t, rows[2], "")
	be.Equal(t, rows[3], "\x1b[0;93;40mKernel is running...\x1b[0m")
	for _, s := range rows[4:] {
		be.Equal(t, s, "")
	}
}

func TestWriteANSIRuns(t *testing.T) {
	t.Parallel()
	fb := vgatext.NewMemory()
	fb.Clear()
	be.Err(t, fb.WriteString("é", 0, 0, vgatext.MakeAttribute(vgatext.Red, vgatext.Black)), nil)
	be.Err(t, fb.WriteString("x", 2, 0, vgatext.MakeAttribute(vgatext.Red, vgatext.Black)), nil)

	var b bytes.Buffer
	be.Err(t, fb.WriteANSI(&b), nil)
	first, _, _ := strings.Cut(b.String(), "\n")
	be.Equal(t, first, "\x1b[0;31;40mé\x1b[0;97;40m \x1b[0;31;40mx\x1b[0m")
	be.Err(t, fb.WriteANSI(nil), nil)
}
