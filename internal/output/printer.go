// Package output formats the non-interactive commands' results.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes messages to stdout and stderr, coloured when enabled.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter honours NO_COLOR and dumb terminals on top of useColors.
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	if os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) Info(format string, args ...any) {
	p.print(p.out, nil, format, args...)
}

// Notice is for outcomes that are not failures, such as an empty result.
func (p *Printer) Notice(format string, args ...any) {
	p.print(p.out, color.New(color.FgYellow), format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.print(p.out, color.New(color.FgGreen), format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.print(p.err, color.New(color.FgRed), format, args...)
}

func (p *Printer) print(w io.Writer, c *color.Color, format string, args ...any) {
	if c != nil && p.useColors {
		c.EnableColor()
		c.Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
