package parser

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
)

// parseMacroGroup parses a `macro NAME ( PARAMS ) -> BODY [ ; NAME ( PARAMS
// ) -> BODY ]* .` slice. Clause bodies are never sliced by depth-tracking:
// the expression grammar never produces a bare '.' or ';', so the next one
// always marks the clause's end.
func parseMacroGroup(file string, slice []token.Token) (ast.MacroGroup, *ngerror.CompileError) {
	i := 1 // skip leading "macro"
	var group ast.MacroGroup

	for {
		clause, name, nextIsTerminator, ni, err := parseClause(file, slice, i, group.Name == "")
		if err != nil {
			return ast.MacroGroup{}, err
		}
		if group.Name == "" {
			group.Name = name
		} else if name != group.Name {
			return ast.MacroGroup{}, ngerror.New(ngerror.InvalidSyntax, pos(file, slice[i].Pos), name,
				"clause name %q does not match macro group %q", name, group.Name)
		}
		group.Clauses = append(group.Clauses, clause)
		i = ni
		if nextIsTerminator {
			break
		}
		i++ // consume ';'
	}

	return group, nil
}

func parseClause(file string, slice []token.Token, i int, first bool) (ast.MacroClause, string, bool, int, *ngerror.CompileError) {
	start := i
	if i >= len(slice) || isStructural(slice[i].Text) || slice[i].IsQuoted() {
		return ast.MacroClause{}, "", false, 0, ngerror.New(ngerror.InvalidSyntax,
			pos(file, atOrLast(slice, i).Pos), atOrLast(slice, i).Text, "expected a macro clause name")
	}
	name := slice[i].Text
	i++

	if i >= len(slice) || slice[i].Text != "(" {
		return ast.MacroClause{}, "", false, 0, ngerror.New(ngerror.InvalidSyntax,
			pos(file, atOrLast(slice, i).Pos), atOrLast(slice, i).Text, "expected '(' after clause name %q", name)
	}
	i++

	params, ni, err := parseParamList(file, slice, i)
	if err != nil {
		return ast.MacroClause{}, "", false, 0, err
	}
	i = ni

	if i >= len(slice) || slice[i].Text != ")" {
		return ast.MacroClause{}, "", false, 0, ngerror.New(ngerror.InvalidSyntax,
			pos(file, atOrLast(slice, i).Pos), atOrLast(slice, i).Text, "expected ')' to close parameter list")
	}
	i++

	if i >= len(slice) || slice[i].Text != "->" {
		return ast.MacroClause{}, "", false, 0, ngerror.New(ngerror.InvalidSyntax,
			pos(file, atOrLast(slice, i).Pos), atOrLast(slice, i).Text, "expected '->' before clause body")
	}
	i++

	bodyStart := i
	for i < len(slice) && slice[i].Text != ";" && slice[i].Text != "." {
		i++
	}
	if i >= len(slice) {
		return ast.MacroClause{}, "", false, 0, ngerror.New(ngerror.InvalidSyntax,
			pos(file, slice[start].Pos), name, "macro clause %q is missing its terminating ';' or '.'", name)
	}
	body := slice[bodyStart:i]

	return ast.MacroClause{Params: params, Body: body, Pos: slice[start].Pos}, name, slice[i].Text == ".", i, nil
}

// parseParamList parses a comma-separated ParamList. At most one parameter,
// the last, may be variadic.
func parseParamList(file string, slice []token.Token, i int) ([]ast.Param, int, *ngerror.CompileError) {
	var params []ast.Param

	if i < len(slice) && slice[i].Text == ")" {
		return params, i, nil
	}

	for {
		variadic := false
		if i < len(slice) && slice[i].Text == "..." {
			variadic = true
			i++
		}
		if i >= len(slice) || isStructural(slice[i].Text) || slice[i].IsQuoted() {
			return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, atOrLast(slice, i).Pos),
				atOrLast(slice, i).Text, "expected a parameter name")
		}
		params = append(params, ast.Param{Name: slice[i].Text, Variadic: variadic})
		i++

		if i < len(slice) && slice[i].Text == "," {
			i++
			continue
		}
		break
	}

	for idx, p := range params {
		if p.Variadic && idx != len(params)-1 {
			return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, slice[i].Pos), p.Name,
				"variadic parameter %q must be the last parameter", p.Name)
		}
	}

	return params, i, nil
}
