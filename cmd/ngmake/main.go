// Command ngmake compiles a source file written in the declarative build
// language into GNU Makefile rules.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	"github.com/marekjm/ngmake/internal/compile"
	"github.com/marekjm/ngmake/internal/diag"
	"github.com/marekjm/ngmake/internal/emit"
)

// cli describes the command line: `ngmake [--debug] <source-file>
// [<target-name>]`. Source is parsed as optional so a missing source file
// produces our own usage diagnostic and exit code rather than kong's.
type cli struct {
	Debug  bool   `help:"Run the full pipeline but produce no output." name:"debug"`
	Source string `arg:"" optional:"" name:"source-file" help:"Path to a source file."`
	Target string `arg:"" optional:"" name:"target-name" help:"Emit only the target with this head."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("ngmake"),
		kong.Description("Compile a declarative build description into GNU Makefile rules."),
		kong.UsageOnError(),
	)

	if c.Source == "" {
		fmt.Fprintln(os.Stderr, "ngmake: missing source file")
		os.Exit(1)
	}

	os.Exit(run(c))
}

// exitCompileError is the exit status for a parse or expansion failure,
// kept distinct from the plain usage-error exit above.
const exitCompileError = 2

func run(c cli) int {
	raw, err := os.ReadFile(c.Source)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "reading %s", c.Source))
		return 1
	}

	targets, cerr := compile.File(c.Source, string(raw), c.Target)
	if cerr != nil {
		diag.Stderr().Error(cerr)
		return exitCompileError
	}

	if c.Debug {
		return 0
	}

	if err := emit.Targets(os.Stdout, targets, ""); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "writing output"))
		return exitCompileError
	}
	return 0
}
