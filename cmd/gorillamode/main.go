// Command gorillamode boots the text mode kernel against an in-memory
// framebuffer and prints the resulting screen.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bengarrett/vgatext"
	"github.com/bengarrett/vgatext/tty"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var (
	ErrFormat = errors.New("unknown output format")
	ErrTTY    = errors.New("the tty format cannot be used with --output or --hold")
)

const (
	formatText = "text"
	formatHTML = "html"
	formatANSI = "ansi"
	formatTTY  = "tty"
)

type options struct {
	format string
	output string
	hold   bool
	debug  bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          filepath.Base(os.Args[0]),
		Short:        "gorillamode boots a VGA text mode kernel",
		Long:         "gorillamode boots a VGA text mode kernel in memory and prints its screen as text, html or ansi, or shows it in the terminal.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, `format`, `f`, formatANSI, `output format: text, html, ansi or tty`)
	cmd.Flags().StringVarP(&opts.output, `output`, `o`, ``, `write the screen to a file instead of stdout, cannot be used with tty`)
	cmd.Flags().BoolVar(&opts.hold, `hold`, false, `stay in the halted state until interrupted, cannot be used with tty`)
	cmd.Flags().BoolVarP(&opts.debug, `debug`, `d`, false, `log kernel progress to stderr`)
	return cmd
}

func main() {
	cobra.EnablePrefixMatching = true
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, opts options) error {
	switch opts.format {
	case formatText, formatHTML, formatANSI, formatTTY:
	default:
		return fmt.Errorf("%w: %q", ErrFormat, opts.format)
	}
	if opts.format == formatTTY && (opts.output != "" || opts.hold) {
		return ErrTTY
	}
	logw := io.Discard
	if opts.debug {
		logw = stderr
	}
	logger := log.New(logw, "kernel: ", log.Ltime)

	k, err := vgatext.NewKernel(vgatext.NewMemory(), logger)
	if err != nil {
		return err
	}
	if err := k.Main(); err != nil {
		return err
	}

	if opts.format == formatTTY {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("new screen: %w", err)
		}
		return ignoreCancel(tty.Show(ctx, s, k.Framebuffer()))
	}

	if opts.output == "" {
		if err := render(stdout, k.Framebuffer(), opts.format); err != nil {
			return err
		}
	} else if err := renderFile(opts.output, k.Framebuffer(), opts.format); err != nil {
		return err
	}
	if !opts.hold {
		return nil
	}
	logger.Println("holding, interrupt to exit")
	return ignoreCancel(k.Halt(ctx))
}

// renderFile creates or truncates the named file and writes the framebuffer to it.
func renderFile(name string, fb *vgatext.Framebuffer, format string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := render(f, fb, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("output %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output close: %w", err)
	}
	return nil
}

// render writes the framebuffer to w in the named format.
func render(w io.Writer, fb *vgatext.Framebuffer, format string) error {
	switch format {
	case formatText:
		_, err := fmt.Fprintln(w, fb.Text())
		return err
	case formatHTML:
		if err := fb.WriteHTML(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	case formatANSI:
		return fb.WriteANSI(w)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
