package parser

import (
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// Lookup resolves a bare identifier encountered while parsing a Value to
// the Value it is bound to, or reports that no such binding exists.
type Lookup func(name string) (value.Value, bool)

// parseValue parses one value element — a single literal, a
// bracket-delimited list, a parenthesis-delimited tuple, or a bare
// identifier resolved immediately against lookup — shared by bindings
// and target headers. *i is advanced past the consumed
// tokens.
func parseValue(toks []token.Token, i *int, file string, lookup Lookup) (value.Value, *ngerror.CompileError) {
	if *i >= len(toks) {
		return value.Value{}, unexpectedEnd(file, toks)
	}

	t := toks[*i]
	switch {
	case t.IsQuoted():
		*i++
		return value.NewStr(t.Unquote()), nil

	case t.Text == "[":
		*i++
		items, err := parseElemList(toks, i, file, "]", lookup)
		if err != nil {
			return value.Value{}, err
		}
		*i++ // consume ']'
		return value.NewList(items...), nil

	case t.Text == "(":
		*i++
		items, err := parseElemList(toks, i, file, ")", lookup)
		if err != nil {
			return value.Value{}, err
		}
		*i++ // consume ')'
		return value.NewTuple(items...), nil

	case isStructural(t.Text):
		return value.Value{}, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), t.Text,
			"expected a string, identifier, list, or tuple")

	default:
		*i++
		v, ok := lookup(t.Text)
		if !ok {
			return value.Value{}, ngerror.New(ngerror.UndefinedName, pos(file, t.Pos), t.Text,
				"undefined name %q", t.Text)
		}
		return v, nil
	}
}

// parseElemList parses a comma-separated ElemList up to (but not
// consuming) closer. A missing comma between two elements, or a missing
// closer, is InvalidSyntax.
func parseElemList(toks []token.Token, i *int, file, closer string, lookup Lookup) ([]value.Value, *ngerror.CompileError) {
	var items []value.Value

	if *i < len(toks) && toks[*i].Text == closer {
		return items, nil
	}

	for {
		v, err := parseValue(toks, i, file, lookup)
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		if *i < len(toks) && toks[*i].Text == "," {
			*i++
			if *i < len(toks) && toks[*i].Text == closer {
				return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, toks[*i].Pos), toks[*i].Text,
					"expected a value after ','")
			}
			continue
		}
		break
	}

	if *i >= len(toks) || toks[*i].Text != closer {
		return nil, missingCloser(file, toks, *i, closer)
	}
	return items, nil
}

func isStructural(text string) bool {
	switch text {
	case "[", "]", "(", ")", ",", ".", "->", "...", ";":
		return true
	}
	return false
}

func unexpectedEnd(file string, toks []token.Token) *ngerror.CompileError {
	last := token.Position{}
	if len(toks) > 0 {
		last = toks[len(toks)-1].Pos
	}
	return ngerror.New(ngerror.InvalidSyntax, pos(file, last), "", "unexpected end of input")
}

func missingCloser(file string, toks []token.Token, i int, closer string) *ngerror.CompileError {
	if i < len(toks) {
		return ngerror.New(ngerror.InvalidSyntax, pos(file, toks[i].Pos), toks[i].Text,
			"expected ',' or '%s'", closer)
	}
	return unexpectedEnd(file, toks)
}
