// Package tty displays a text mode framebuffer in a terminal using tcell.
package tty

import (
	"context"
	"errors"
	"fmt"

	"github.com/bengarrett/vgatext"
	"github.com/gdamore/tcell/v2"
)

var (
	ErrScreen      = errors.New("screen is nil")
	ErrFramebuffer = errors.New("framebuffer is nil")
)

// Style returns the tcell style of a framebuffer attribute,
// with the VGA colors mapped onto the terminal's 16 color palette.
func Style(a vgatext.Attribute) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(a.FG().ANSI())).
		Background(tcell.PaletteColor(a.BG().ANSI()))
}

// Draw copies every framebuffer cell onto the screen, starting at the top left.
// Cells that fall outside of a smaller screen are clipped by tcell.
// Nothing is drawn if either the screen or the framebuffer is nil.
func Draw(s tcell.Screen, fb *vgatext.Framebuffer) {
	if s == nil || fb == nil {
		return
	}
	for y := range vgatext.Height {
		for x := range vgatext.Width {
			c, err := fb.Cell(x, y)
			if err != nil {
				continue
			}
			s.SetContent(x, y, c.Rune(), nil, Style(c.Attr))
		}
	}
}

// Show initializes the screen, draws the framebuffer and holds it on display
// until Escape, q or Ctrl-C is pressed, or ctx is done.
// The screen is always finalized before returning.
func Show(ctx context.Context, s tcell.Screen, fb *vgatext.Framebuffer) error {
	if s == nil {
		return ErrScreen
	}
	if fb == nil {
		return ErrFramebuffer
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("tty init: %w", err)
	}
	defer s.Fini()
	s.HideCursor()
	s.Clear()
	Draw(s, fb)
	s.Show()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			if quit(ev) {
				return nil
			}
		}
	}
}

func quit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
