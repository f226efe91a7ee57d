// Package expand implements the expansion engine: the recursive,
// token-slice-driven evaluator that turns a macro or target body into a
// flat evaluated sequence of Str values interleaved with step markers.
package expand

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// maxDepth bounds macro call recursion. Source authors are expected to
// write terminating recursions; this is only a backstop against runaway
// expansion.
const maxDepth = 500

// Item is one element of an evaluated sequence: either a step marker
// (Break) or a value produced by evaluating one body position.
type Item struct {
	Break bool
	Value value.Value
}

// Macros is the read-only, name-keyed macro table built once parsing
// finishes; it and the global environment never change once expansion
// begins.
type Macros map[string]*ast.MacroGroup

// Body evaluates a full macro or target body slice — the entry point used
// for a target's DirectBody, an `if` branch, and (recursively) a called
// macro clause's body. Every one of these is the same grammar production,
// `Expr (',' Expr)*`, so one function drives all of them.
func Body(toks []token.Token, env *value.Env, macros Macros, file string, depth int) ([]Item, *ngerror.CompileError) {
	var items []Item
	i := 0
	for i < len(toks) {
		if toks[i].Text == "," {
			items = append(items, Item{Break: true})
			i++
			continue
		}
		got, err := evalExpr(toks, &i, env, macros, file, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}
	return items, nil
}

// Lines groups an evaluated sequence into recipe lines at Break items. A
// leading, trailing, or doubled break yields an empty line: each
// top-level ',' in a body produces exactly one line break.
func Lines(items []Item) [][]value.Value {
	var lines [][]value.Value
	var cur []value.Value
	seenAny := false
	for _, it := range items {
		seenAny = true
		if it.Break {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, it.Value)
	}
	if seenAny {
		lines = append(lines, cur)
	}
	return lines
}

func onlyValues(items []Item) []value.Value {
	vals := make([]value.Value, 0, len(items))
	for _, it := range items {
		if !it.Break {
			vals = append(vals, it.Value)
		}
	}
	return vals
}

func evalExpr(toks []token.Token, i *int, env *value.Env, macros Macros, file string, depth int) ([]Item, *ngerror.CompileError) {
	if depth > maxDepth {
		t := atOrLastTok(toks, *i)
		return nil, ngerror.New(ngerror.ExpansionDepthExceeded, pos(file, t.Pos), t.Text,
			"expansion recursion limit exceeded")
	}
	if *i >= len(toks) {
		t := atOrLastTok(toks, *i)
		return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), t.Text, "unexpected end of body")
	}

	t := toks[*i]
	switch {
	case t.IsQuoted():
		*i++
		return []Item{{Value: value.NewStr(t.Unquote())}}, nil

	case t.Text == "true" || t.Text == "false":
		*i++
		return []Item{{Value: value.NewStr(t.Text)}}, nil

	case t.Text == "...":
		*i++
		inner, err := evalExpr(toks, i, env, macros, file, depth+1)
		if err != nil {
			return nil, err
		}
		vals := onlyValues(inner)
		if len(vals) != 1 || !vals[0].IsSequence() {
			return nil, ngerror.New(ngerror.ShapeError, pos(file, t.Pos), "...",
				"'...' applied to a non-sequence value")
		}
		out := make([]Item, 0, len(vals[0].Items))
		for _, e := range vals[0].Items {
			out = append(out, Item{Value: e})
		}
		return out, nil

	case t.Text == "boolean":
		*i++
		inner, err := evalExpr(toks, i, env, macros, file, depth+1)
		if err != nil {
			return nil, err
		}
		vals := onlyValues(inner)
		truthy := len(vals) == 1 && vals[0].Truthy()
		return []Item{{Value: value.NewStr(boolText(truthy))}}, nil

	case t.Text == "if":
		return evalIf(toks, i, env, macros, file, depth)

	case isStructuralToken(t.Text):
		return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), t.Text, "unexpected %q", t.Text)

	default:
		if *i+1 < len(toks) && toks[*i+1].Text == "(" {
			return evalMacroCall(toks, i, env, macros, file, depth)
		}
		name := t.Text
		*i++
		if v, ok := env.Lookup(name); ok {
			return []Item{{Value: v}}, nil
		}
		if _, ok := macros[name]; ok {
			return []Item{{Value: value.NewStr(name)}}, nil
		}
		return nil, ngerror.New(ngerror.UndefinedName, pos(file, t.Pos), name, "undefined name %q", name)
	}
}

func evalMacroCall(toks []token.Token, i *int, env *value.Env, macros Macros, file string, depth int) ([]Item, *ngerror.CompileError) {
	nameTok := toks[*i]
	name := nameTok.Text
	*i += 2 // consume IDENT and '('

	var args []value.Value
	if *i < len(toks) && toks[*i].Text != ")" {
		for {
			got, err := evalExpr(toks, i, env, macros, file, depth+1)
			if err != nil {
				return nil, err
			}
			args = append(args, onlyValues(got)...)
			if *i < len(toks) && toks[*i].Text == "," {
				*i++
				continue
			}
			break
		}
	}
	if *i >= len(toks) || toks[*i].Text != ")" {
		t := atOrLastTok(toks, *i)
		return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), t.Text,
			"expected ')' to close call to %q", name)
	}
	*i++

	group, ok := macros[name]
	if !ok {
		return nil, ngerror.New(ngerror.UndefinedMacro, pos(file, nameTok.Pos), name, "undefined macro %q", name)
	}

	locals, body, err := SelectClause(file, nameTok.Pos, group, args)
	if err != nil {
		return nil, err
	}

	child := env.Child(locals)
	return Body(body, child, macros, file, depth+1)
}

// SelectClause runs clause selection: the first clause (in source order)
// whose arity matches len(args) wins. A clause with a variadic last
// parameter matches any argument count no smaller than its fixed prefix.
// It is shared by ordinary macro calls and by a delegated target's
// header-as-argument-list dispatch, which runs clause selection exactly
// once against the target's (head, deps) pair.
func SelectClause(file string, at token.Position, group *ast.MacroGroup, args []value.Value) (map[string]value.Value, []token.Token, *ngerror.CompileError) {
	for _, clause := range group.Clauses {
		m := len(clause.Params)
		if m == 0 {
			if len(args) == 0 {
				return map[string]value.Value{}, clause.Body, nil
			}
			continue
		}
		last := clause.Params[m-1]
		if last.Variadic {
			if len(args) >= m-1 {
				locals := make(map[string]value.Value, m)
				for idx := 0; idx < m-1; idx++ {
					locals[clause.Params[idx].Name] = args[idx]
				}
				locals[last.Name] = value.NewList(args[m-1:]...)
				return locals, clause.Body, nil
			}
			continue
		}
		if len(args) == m {
			locals := make(map[string]value.Value, m)
			for idx := 0; idx < m; idx++ {
				locals[clause.Params[idx].Name] = args[idx]
			}
			return locals, clause.Body, nil
		}
	}
	return nil, nil, ngerror.New(ngerror.NoMatchingClause, pos(file, at), group.Name,
		"no clause of macro %q matches %d argument(s)", group.Name, len(args))
}

func evalIf(toks []token.Token, i *int, env *value.Env, macros Macros, file string, depth int) ([]Item, *ngerror.CompileError) {
	ifTok := toks[*i]
	*i++ // consume 'if'

	condItems, err := evalExpr(toks, i, env, macros, file, depth+1)
	if err != nil {
		return nil, err
	}
	condVals := onlyValues(condItems)
	truthy := len(condVals) == 1 && condVals[0].Truthy()

	if *i >= len(toks) || toks[*i].Text != "->" {
		t := atOrLastTok(toks, *i)
		return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), t.Text,
			"expected '->' after 'if' condition")
	}
	*i++

	thenToks, ni, serr := scanBranch(toks, *i, file, "else")
	if serr != nil {
		return nil, serr
	}
	*i = ni
	if *i >= len(toks) || toks[*i].Text != "else" {
		return nil, ngerror.New(ngerror.InvalidSyntax, pos(file, ifTok.Pos), "if", "'if' without matching 'else'")
	}
	*i++ // consume 'else'

	elseToks, ni2, serr2 := scanBranch(toks, *i, file, "")
	if serr2 != nil {
		return nil, serr2
	}
	*i = ni2

	chosen := elseToks
	if truthy {
		chosen = thenToks
	}
	return Body(chosen, env, macros, file, depth+1)
}

// scanBranch slices out one of an `if`'s branches without evaluating it —
// both branches have their bracket nesting checked, but only the chosen
// one is expanded. stopWord, if non-empty, is the keyword that ends the
// branch (top-level "else"); if empty, the branch ends at a top-level ','
// or the end of toks (matching an ordinary Expr's extent).
func scanBranch(toks []token.Token, start int, file, stopWord string) ([]token.Token, int, *ngerror.CompileError) {
	depth := 0
	j := start
	for j < len(toks) {
		switch toks[j].Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, toks[j].Pos), ")", "unmatched ')'")
			}
		case stopWord:
			if stopWord != "" && depth == 0 {
				return toks[start:j], j, nil
			}
		case ",":
			if stopWord == "" && depth == 0 {
				return toks[start:j], j, nil
			}
		}
		j++
	}
	if stopWord != "" {
		last := atOrLastTok(toks, start)
		return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, last.Pos), last.Text,
			"expected %q", stopWord)
	}
	if depth > 0 {
		last := atOrLastTok(toks, j)
		return nil, 0, ngerror.New(ngerror.InvalidSyntax, pos(file, last.Pos), last.Text, "unclosed '('")
	}
	return toks[start:j], j, nil
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func isStructuralToken(text string) bool {
	switch text {
	case "[", "]", "(", ")", ",", ".", "->", "...", ";", "else":
		return true
	}
	return false
}

func atOrLastTok(toks []token.Token, i int) token.Token {
	if i < len(toks) {
		return toks[i]
	}
	if len(toks) > 0 {
		return toks[len(toks)-1]
	}
	return token.Token{}
}

func pos(file string, p token.Position) ngerror.Position {
	return ngerror.Position{File: file, Line: p.Line, Column: p.Column}
}
