// Package parser turns source text into an ast.File: lexing, token
// fusion, top-level splitting, and the structural parse of bindings,
// macro groups, and targets.
package parser

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/lexer"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/value"
)

// Parse runs the full front end over source, attributed to file in
// diagnostics, and returns the parsed file plus the frozen global table
// bindings resolved into (needed downstream by the expansion engine).
func Parse(file, source string) (*ast.File, value.Globals, *ngerror.CompileError) {
	lx := lexer.New(file, source)
	toks := lexer.Collect(lx.Tokens())
	if err := lx.Err(); err != nil {
		return nil, nil, err
	}

	toks = lexer.FuseArrows(toks)
	toks = lexer.FuseSpreads(toks)

	lets, macros, dos, err := Split(file, toks)
	if err != nil {
		return nil, nil, err
	}

	globals := value.Globals{}
	var bindings []ast.Binding
	for _, slice := range lets {
		b, err := parseBinding(file, slice, globalsSoFar(globals))
		if err != nil {
			return nil, nil, err
		}
		if _, exists := globals[b.Name]; exists {
			return nil, nil, ngerror.New(ngerror.InvalidSyntax, pos(file, b.Pos), b.Name,
				"duplicate binding name %q", b.Name)
		}
		bindings = append(bindings, b)
		globals[b.Name] = b.Value
	}

	var groups []ast.MacroGroup
	for _, slice := range macros {
		g, err := parseMacroGroup(file, slice)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, g)
	}

	lookup := globalsSoFar(globals)
	var targets []ast.Target
	for _, slice := range dos {
		t, err := parseTarget(file, slice, lookup)
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, t)
	}

	return &ast.File{Bindings: bindings, Macros: groups, Targets: targets}, globals, nil
}
