// Package diag writes compile diagnostics to a terminal, colorizing them
// when the destination is a real TTY.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/marekjm/ngmake/internal/ngerror"
)

const (
	ansiTermDefault = "\033[0m"
	ansiTermRed     = "\033[31m"
	ansiTermBright  = "\033[1m"
)

// Writer writes formatted diagnostics to an underlying io.Writer, in color
// when that writer is a terminal.
type Writer struct {
	out   io.Writer
	color bool
}

// Stderr builds a Writer around os.Stderr, wrapped with go-colorable so
// ANSI sequences render on Windows consoles too, and colorized only when
// stderr is attached to a terminal.
func Stderr() *Writer {
	isTerm := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return &Writer{out: colorable.NewColorableStderr(), color: isTerm}
}

// Error prints a CompileError in its fixed `error: file:line:col: token:
// message` form, verbatim — color, when enabled, wraps the whole line
// without altering its text.
func (w *Writer) Error(err *ngerror.CompileError) {
	line := err.Error()
	if !w.color {
		fmt.Fprintln(w.out, line)
		return
	}
	fmt.Fprintln(w.out, ansiTermBright+ansiTermRed+line+ansiTermDefault)
}
