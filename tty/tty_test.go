package tty_test

import (
	"context"
	"testing"
	"time"

	"github.com/bengarrett/vgatext"
	"github.com/bengarrett/vgatext/tty"
	"github.com/gdamore/tcell/v2"
	"github.com/nalgeon/be"
)

func booted(t *testing.T) *vgatext.Framebuffer {
	t.Helper()
	k, err := vgatext.NewKernel(vgatext.NewMemory(), nil)
	be.Err(t, err, nil)
	be.Err(t, k.Main(), nil)
	return k.Framebuffer()
}

func TestStyle(t *testing.T) {
	t.Parallel()
	got := tty.Style(vgatext.MakeAttribute(vgatext.LightGreen, vgatext.Black))
	want := tcell.StyleDefault.Foreground(tcell.PaletteColor(10)).Background(tcell.PaletteColor(0))
	be.Equal(t, got, want)
	got = tty.Style(vgatext.MakeAttribute(vgatext.Blue, vgatext.Brown))
	want = tcell.StyleDefault.Foreground(tcell.PaletteColor(4)).Background(tcell.PaletteColor(3))
	be.Equal(t, got, want)
}

func TestDraw(t *testing.T) {
	t.Parallel()
	fb := booted(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	be.Err(t, screen.Init(), nil)
	defer screen.Fini()
	screen.SetSize(vgatext.Width, vgatext.Height)

	tty.Draw(screen, fb)
	screen.Show()

	for x, r := range "Kernel is running..." {
		mainc, _, style, _ := screen.GetContent(x, 3)
		be.Equal(t, mainc, r)
		be.Equal(t, style, tty.Style(vgatext.MakeAttribute(vgatext.Yellow, vgatext.Black)))
	}
	mainc, _, style, _ := screen.GetContent(0, 2)
	be.Equal(t, mainc, ' ')
	be.Equal(t, style, tty.Style(vgatext.DefaultAttribute))
}

func TestShow(t *testing.T) {
	t.Parallel()
	fb := booted(t)
	be.Err(t, tty.Show(context.Background(), nil, fb), tty.ErrScreen)
	be.Err(t, tty.Show(context.Background(), tcell.NewSimulationScreen("UTF-8"), nil), tty.ErrFramebuffer)

	// a cancelled context releases the screen
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tty.Show(ctx, tcell.NewSimulationScreen("UTF-8"), fb)
	be.Err(t, err, context.Canceled)
}

func TestShowKeys(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want error
	}{
		{"escape", tcell.KeyEscape, 0, nil},
		{"q", tcell.KeyRune, 'q', nil},
		{"ctrl-c", tcell.KeyCtrlC, 0, nil},
		{"other rune", tcell.KeyRune, 'x', context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fb := booted(t)
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			screen := tcell.NewSimulationScreen("UTF-8")

			// keys are only queued once Show has initialized the screen
			done := make(chan struct{})
			go func() {
				tick := time.NewTicker(10 * time.Millisecond)
				defer tick.Stop()
				for {
					select {
					case <-done:
						return
					case <-tick.C:
						screen.InjectKey(tt.key, tt.r, tcell.ModNone)
					}
				}
			}()
			err := tty.Show(ctx, screen, fb)
			close(done)
			be.Err(t, err, tt.want)
		})
	}
}

func TestDrawNil(t *testing.T) {
	t.Parallel()
	screen := tcell.NewSimulationScreen("UTF-8")
	be.Err(t, screen.Init(), nil)
	defer screen.Fini()

	tty.Draw(nil, booted(t))
	tty.Draw(screen, nil)
	_, _, style, _ := screen.GetContent(0, 0)
	be.Equal(t, style, tcell.StyleDefault)
}
