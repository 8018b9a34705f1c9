package vgatext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

var (
	ErrFramebuffer = errors.New("framebuffer is nil")
	ErrHalted      = errors.New("kernel has halted")
	ErrNotHalted   = errors.New("kernel has not run")
)

// State is the stage of the kernel entry routine.
type State uint8

const (
	Booting State = iota // Booting is the state before Main is called
	Running              // Running is the state while Main draws the screen
	Halted               // Halted is the terminal state, no further work is done
)

func (s State) String() string {
	switch s {
	case Booting:
		return "booting"
	case Running:
		return "running"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Message is a string drawn at a fixed position by the kernel.
type Message struct {
	Text string
	X, Y int
	Attr Attribute
}

// Banner returns the messages that the kernel draws after clearing the screen.
func Banner() []Message {
	return []Message{
		{Text: "GORILLA MODE", X: 0, Y: 0, Attr: MakeAttribute(LightGreen, Black)},
		{Text: "Screen cleared", X: 0, Y: 1, Attr: MakeAttribute(LightCyan, Black)},
		{Text: "Kernel is running...", X: 0, Y: 3, Attr: MakeAttribute(Yellow, Black)},
	}
}

// Kernel runs the one-shot entry routine against a framebuffer.
type Kernel struct {
	fb    *Framebuffer
	log   *log.Logger
	state State
}

// NewKernel returns a Kernel that draws to fb.
// Progress is written to logger, and a nil logger discards it.
func NewKernel(fb *Framebuffer, logger *log.Logger) (*Kernel, error) {
	if fb == nil {
		return nil, ErrFramebuffer
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Kernel{
		fb:    fb,
		log:   logger,
		state: Booting,
	}, nil
}

// State returns the current stage of the kernel.
func (k *Kernel) State() State {
	return k.state
}

// Framebuffer returns the framebuffer the kernel draws to.
func (k *Kernel) Framebuffer() *Framebuffer {
	return k.fb
}

// Main clears the screen, draws the [Banner] and then halts the kernel.
// It can only run once, later calls return ErrHalted.
//
// A failed write stops the routine and the kernel is halted
// with whatever was drawn up to that point.
func (k *Kernel) Main() error {
	if k.state != Booting {
		return fmt.Errorf("main: %w", ErrHalted)
	}
	k.state = Running
	defer func() {
		k.state = Halted
		k.log.Println("halted")
	}()
	k.fb.Clear()
	k.log.Printf("cleared %dx%d framebuffer", Width, Height)
	for _, m := range Banner() {
		if err := k.fb.WriteString(m.Text, m.X, m.Y, m.Attr); err != nil {
			return fmt.Errorf("main %q: %w", m.Text, err)
		}
		k.log.Printf("wrote %q at %d,%d using %s", m.Text, m.X, m.Y, m.Attr)
	}
	return nil
}

// Halt blocks in the halted state until ctx is done, and then returns the context error.
// The kernel does no work while halted, so the framebuffer keeps its final contents.
// If Main has not been called, ErrNotHalted is returned immediately.
func (k *Kernel) Halt(ctx context.Context) error {
	if k.state != Halted {
		return fmt.Errorf("halt while %s: %w", k.state, ErrNotHalted)
	}
	<-ctx.Done()
	return ctx.Err()
}
