package parser

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// parseTarget parses a `do` slice in either its canonical or delegated
// form. lookup resolves identifiers in HEAD_EXPR/DEPS_EXPR against the
// complete global table — every target sees every binding, regardless of
// source order.
func parseTarget(file string, slice []token.Token, lookup Lookup) (ast.Target, *ngerror.CompileError) {
	i := 1 // skip leading "do"
	kwPos := slice[0].Pos

	if i >= len(slice) || slice[i].Text != "(" {
		return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected '(' after 'do'")
	}
	i++

	head, err := parseValue(slice, &i, file, lookup)
	if err != nil {
		return ast.Target{}, err
	}

	deps := value.NewList()
	if i < len(slice) && slice[i].Text == "," {
		i++
		deps, err = parseValue(slice, &i, file, lookup)
		if err != nil {
			return ast.Target{}, err
		}
	}

	if i >= len(slice) || slice[i].Text != ")" {
		return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected ')' to close target header")
	}
	i++

	if i >= len(slice) || slice[i].Text != "->" {
		return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected '->' after target header")
	}
	i++

	if i >= len(slice) || slice[i].IsQuoted() {
		return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected a binder pair or macro name")
	}

	target := ast.Target{HeadExpr: head, DepsExpr: deps, Pos: kwPos}

	if slice[i].Text == "(" {
		i++
		names, ni, perr := parseBinderNames(file, slice, i)
		if perr != nil {
			return ast.Target{}, perr
		}
		i = ni

		if i >= len(slice) || slice[i].Text != ")" {
			return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
				atOrLast(slice, i).Text, "expected ')' to close binder pair")
		}
		i++

		if i >= len(slice) || slice[i].Text != "->" {
			return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
				atOrLast(slice, i).Text, "expected '->' before target body")
		}
		i++

		if i >= len(slice) || slice[len(slice)-1].Text != "." {
			return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, kwPos), "do",
				"target is missing its terminating '.'")
		}
		target.Direct = &ast.DirectBody{BinderNames: names, Body: slice[i : len(slice)-1]}
		return target, nil
	}

	name := slice[i].Text
	i++
	if i >= len(slice) || slice[i].Text != "." {
		return ast.Target{}, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
			atOrLast(slice, i).Text, "expected '.' to terminate delegated target")
	}
	target.Delegate = &ast.MacroDelegate{MacroName: name}
	return target, nil
}

func parseBinderNames(file string, slice []token.Token, i int) ([]string, int, *ngerror.CompileError) {
	var names []string

	if i < len(slice) && slice[i].Text == ")" {
		return names, i, nil
	}

	for {
		if i >= len(slice) || isStructural(slice[i].Text) || slice[i].IsQuoted() {
			return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
				atOrLast(slice, i).Text, "expected a binder name")
		}
		names = append(names, slice[i].Text)
		i++

		if i < len(slice) && slice[i].Text == "," {
			i++
			continue
		}
		break
	}
	return names, i, nil
}
