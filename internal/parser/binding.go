package parser

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// parseBinding parses one `let NAME = VALUE .` slice. lookup resolves
// identifiers appearing inside VALUE against every binding defined
// earlier in the file — a binding's VALUE may not forward-reference a
// name that is not yet in scope.
func parseBinding(file string, slice []token.Token, lookup Lookup) (ast.Binding, *ngerror.CompileError) {
	i := 1 // skip leading "let"
	kwPos := slice[0].Pos

	if i >= len(slice) || isStructural(slice[i].Text) || slice[i].IsQuoted() {
		return ast.Binding{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected a binding name after 'let'")
	}
	name := slice[i].Text
	i++

	if i >= len(slice) || slice[i].Text != "=" {
		return ast.Binding{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected '=' after binding name %q", name)
	}
	i++

	v, err := parseValue(slice, &i, file, lookup)
	if err != nil {
		return ast.Binding{}, err
	}

	if i >= len(slice) || slice[i].Text != "." {
		return ast.Binding{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected '.' to terminate binding %q", name)
	}

	return ast.Binding{Name: name, Value: v, Pos: kwPos}, nil
}

func atOrLast(toks []token.Token, i int) token.Token {
	if i < len(toks) {
		return toks[i]
	}
	if len(toks) > 0 {
		return toks[len(toks)-1]
	}
	return token.Token{}
}

// globalsSoFar adapts the bindings parsed up to this point into a Lookup.
func globalsSoFar(g value.Globals) Lookup {
	return func(name string) (value.Value, bool) {
		v, ok := g[name]
		return v, ok
	}
}
