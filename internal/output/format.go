// Package output provides terminal output formatting utilities for the semrel CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Printer writes human-readable status lines. With Plain set, no ANSI codes
// are emitted regardless of the terminal.
type Printer struct {
	Out   io.Writer
	Plain bool
}

// NewPrinter returns a Printer for out.
func NewPrinter(out io.Writer, plain bool) *Printer {
	return &Printer{Out: out, Plain: plain}
}

func (p *Printer) paint(s string, attrs ...color.Attribute) string {
	if p.Plain {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Header prints a bold section title followed by a rule.
func (p *Printer) Header(title string) {
	width := GetTerminalWidth()
	if width > 60 {
		width = 60
	}
	fmt.Fprintln(p.Out, p.paint(title, color.FgCyan, color.Bold))
	fmt.Fprintln(p.Out, p.paint(strings.Repeat("─", width), color.Faint))
}

// Field prints an aligned "key: value" line.
func (p *Printer) Field(key, value string) {
	fmt.Fprintf(p.Out, "  %s %s\n", p.paint(fmt.Sprintf("%-18s", key+":"), color.FgWhite, color.Bold), value)
}

// Success prints a green checkmark line.
func (p *Printer) Success(message string) {
	mark := "✓"
	if p.Plain {
		mark = "[OK]"
	}
	fmt.Fprintf(p.Out, "%s %s\n", p.paint(mark, color.FgGreen, color.Bold), message)
}

// Warning prints a yellow warning line.
func (p *Printer) Warning(message string) {
	fmt.Fprintf(p.Out, "%s %s\n", p.paint("Warning:", color.FgYellow, color.Bold), message)
}

// DryRun prints a note that a write was skipped.
func (p *Printer) DryRun(message string) {
	fmt.Fprintf(p.Out, "%s %s\n", p.paint("[dry-run]", color.FgMagenta), message)
}
