// Package ui renders CLI output: styled stage banners when attached to a
// terminal, plain log lines when headless (CI, piped output, NO_COLOR).
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Printer writes user-facing output for the CLI commands.
type Printer struct {
	w        io.Writer
	headless bool

	stageStyle   lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewPrinter creates a Printer on stdout with automatic headless detection.
func NewPrinter() *Printer {
	return newPrinter(os.Stdout, detectHeadless())
}

// NewPrinterWithWriter creates a Printer with explicit writer and mode (for tests).
func NewPrinterWithWriter(w io.Writer, headless bool) *Printer {
	return newPrinter(w, headless)
}

func newPrinter(w io.Writer, headless bool) *Printer {
	return &Printer{
		w:            w,
		headless:     headless,
		stageStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failureStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dimStyle:     lipgloss.NewStyle().Faint(true),
	}
}

// detectHeadless reports whether styled output should be suppressed.
// NO_COLOR and CI environments force headless even on a TTY.
func detectHeadless() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Headless reports the printer's mode.
func (p *Printer) Headless() bool {
	return p.headless
}

// Stage announces a pipeline stage.
func (p *Printer) Stage(n int, name string) {
	label := fmt.Sprintf("[%d/6] %s", n, name)
	if p.headless {
		fmt.Fprintln(p.w, label)
		return
	}
	fmt.Fprintln(p.w, p.stageStyle.Render(label))
}

// Success reports a completed operation.
func (p *Printer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.headless {
		fmt.Fprintln(p.w, "ok: "+msg)
		return
	}
	fmt.Fprintln(p.w, p.successStyle.Render("✓ "+msg))
}

// Failure reports a failed operation.
func (p *Printer) Failure(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.headless {
		fmt.Fprintln(p.w, "error: "+msg)
		return
	}
	fmt.Fprintln(p.w, p.failureStyle.Render("✗ "+msg))
}

// Info prints a secondary detail line.
func (p *Printer) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.headless {
		fmt.Fprintln(p.w, msg)
		return
	}
	fmt.Fprintln(p.w, p.dimStyle.Render(msg))
}
