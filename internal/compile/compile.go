// Package compile orchestrates the front end into compiled Makefile
// targets: parsing the whole file once, then expanding every target's
// body against the frozen global environment and macro table.
package compile

import (
	"github.com/marekjm/ngmake/internal/ast"
	"github.com/marekjm/ngmake/internal/expand"
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/parser"
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// Target is one fully evaluated Makefile rule: a head, its dependencies,
// and recipe lines, each line already reduced to plain words.
type Target struct {
	Head   string
	Deps   []string
	Recipe [][]string
}

// File compiles file's source into an ordered list of Targets — one per
// `do` form, in source order; compiling one target never influences
// another, since the environment and macro table are frozen before any
// expansion begins. When name is non-empty, only the target whose head
// (unquoted) equals name is compiled; every other target's body is never
// expanded, so an unrelated target's compile error cannot abort a
// selective run.
func File(file, source, name string) ([]Target, *ngerror.CompileError) {
	parsed, globals, err := parser.Parse(file, source)
	if err != nil {
		return nil, err
	}

	macros := make(expand.Macros, len(parsed.Macros))
	for idx := range parsed.Macros {
		g := parsed.Macros[idx]
		macros[g.Name] = &g
	}

	env := value.NewEnv(globals)

	targets := make([]Target, 0, len(parsed.Targets))
	for _, t := range parsed.Targets {
		ct, matched, err := compileTarget(file, t, env, macros, name)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		targets = append(targets, ct)
	}
	return targets, nil
}

func compileTarget(file string, t ast.Target, env *value.Env, macros expand.Macros, name string) (Target, bool, *ngerror.CompileError) {
	head, err := asStr(file, t.Pos, t.HeadExpr, "target head")
	if err != nil {
		return Target{}, false, err
	}

	if name != "" && head != name {
		return Target{}, false, nil
	}

	var deps []string
	for _, d := range t.DepsExpr.Elements() {
		s, err := asStr(file, t.Pos, d, "dependency")
		if err != nil {
			return Target{}, false, err
		}
		deps = append(deps, s)
	}

	var items []expand.Item
	switch {
	case t.Direct != nil:
		locals := directLocals(t.Direct.BinderNames, head, deps)
		items, err = expand.Body(t.Direct.Body, env.Child(locals), macros, file, 0)
		if err != nil {
			return Target{}, false, err
		}

	case t.Delegate != nil:
		group, ok := macros[t.Delegate.MacroName]
		if !ok {
			return Target{}, false, ngerror.New(ngerror.UndefinedMacro, pos(file, t.Pos), t.Delegate.MacroName,
				"undefined macro %q", t.Delegate.MacroName)
		}
		args := headerArgs(head, deps)
		locals, body, serr := expand.SelectClause(file, t.Pos, group, args)
		if serr != nil {
			// A delegated target's header/clause mismatch is an ArityError,
			// distinct from an ordinary call site's NoMatchingClause, even
			// though SelectClause is shared between the two — reclassify here.
			return Target{}, false, ngerror.New(ngerror.ArityError, serr.Pos, serr.Token, "%s", serr.Message)
		}
		items, err = expand.Body(body, env.Child(locals), macros, file, 0)
		if err != nil {
			return Target{}, false, err
		}

	default:
		return Target{}, false, ngerror.New(ngerror.InvalidSyntax, pos(file, t.Pos), "do",
			"target has neither a body nor a macro delegate")
	}

	lines := expand.Lines(items)
	recipe := make([][]string, 0, len(lines))
	for _, line := range lines {
		words, err := recipeWords(file, t.Pos, line)
		if err != nil {
			return Target{}, false, err
		}
		recipe = append(recipe, words)
	}

	return Target{Head: head, Deps: deps, Recipe: recipe}, true, nil
}

// directLocals builds the initial local frame for a canonical target body:
// the first binder name is bound to the target head, the second (if
// present) to the list of dependencies.
func directLocals(names []string, head string, deps []string) map[string]value.Value {
	locals := map[string]value.Value{}
	if len(names) > 0 {
		locals[names[0]] = value.NewStr(head)
	}
	if len(names) > 1 {
		items := make([]value.Value, len(deps))
		for i, d := range deps {
			items[i] = value.NewStr(d)
		}
		locals[names[1]] = value.NewList(items...)
	}
	return locals
}

// headerArgs builds the delegated form's argument list: the target head
// as one argument, the dependency list as a second — exactly the shape
// clause selection sees for any other two-argument macro call.
func headerArgs(head string, deps []string) []value.Value {
	items := make([]value.Value, len(deps))
	for i, d := range deps {
		items[i] = value.NewStr(d)
	}
	return []value.Value{value.NewStr(head), value.NewList(items...)}
}

// recipeWords reduces one evaluated recipe line to plain words. A term
// that is itself a List or Tuple — reached by referencing a list-bound
// name directly, without an explicit '...' — is flattened one level, the
// same depth an explicit spread would have produced: a dependency list
// forwarded bare through a macro parameter still ends up as its bare
// words on the recipe line. A term nested deeper than that is a shape
// error: recipe lines are flat by construction.
func recipeWords(file string, p token.Position, line []value.Value) ([]string, *ngerror.CompileError) {
	words := make([]string, 0, len(line))
	for _, v := range line {
		switch {
		case v.Kind == value.Str:
			words = append(words, v.Text)
		case v.IsSequence():
			for _, inner := range v.Items {
				s, err := asStr(file, p, inner, "recipe term")
				if err != nil {
					return nil, err
				}
				words = append(words, s)
			}
		default:
			s, err := asStr(file, p, v, "recipe term")
			if err != nil {
				return nil, err
			}
			words = append(words, s)
		}
	}
	return words, nil
}

func asStr(file string, p token.Position, v value.Value, what string) (string, *ngerror.CompileError) {
	if v.Kind != value.Str {
		return "", ngerror.New(ngerror.ShapeError, pos(file, p), v.Kind.String(),
			"%s must be a string, found a %s", what, v.Kind)
	}
	return v.Text, nil
}

func pos(file string, p token.Position) ngerror.Position {
	return ngerror.Position{File: file, Line: p.Line, Column: p.Column}
}
