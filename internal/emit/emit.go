// Package emit formats compiled targets as GNU Makefile rules. It is
// deliberately external to the core: nothing downstream of compile.Target
// knows about the source language anymore.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/marekjm/ngmake/internal/compile"
)

// Target writes one rule: `head: dep0 dep1 ... depk`, a tab-indented
// recipe line per entry in t.Recipe, and a trailing blank line separating
// it from whatever rule follows.
func Target(w io.Writer, t compile.Target) error {
	if _, err := fmt.Fprintf(w, "%s:", t.Head); err != nil {
		return err
	}
	for _, d := range t.Deps {
		if _, err := fmt.Fprintf(w, " %s", d); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, line := range t.Recipe {
		if _, err := fmt.Fprintf(w, "\t%s\n", strings.Join(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Targets writes every target in ts, in order, filtered by name when name
// is non-empty — only the target whose head (unquoted) equals name is
// written; compile.File already applies the same filter before a target's
// body is ever expanded, so this is a convenience for callers working
// directly with an already-compiled, unfiltered slice.
func Targets(w io.Writer, ts []compile.Target, name string) error {
	for _, t := range ts {
		if name != "" && t.Head != name {
			continue
		}
		if err := Target(w, t); err != nil {
			return err
		}
	}
	return nil
}
