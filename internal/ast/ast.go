// Package ast holds the raw, unexpanded shapes of the three top-level
// forms: bindings, macro groups, and targets.
package ast

import (
	"github.com/marekjm/ngmake/internal/token"
	"github.com/marekjm/ngmake/internal/value"
)

// Binding is a `let NAME = VALUE .` form. Global, immutable, defined once.
type Binding struct {
	Name  string
	Value value.Value
	Pos   token.Position
}

// Param is one formal parameter of a macro clause: either a plain name or
// (if it is the clause's last parameter) a variadic collector.
type Param struct {
	Name     string
	Variadic bool
}

// MacroClause is one arity/shape alternative within a MacroGroup. Body is
// kept as a token slice — a half-open range into the file's token array —
// rather than a parsed expression tree, because expansion is token-driven
// and clauses are expanded fresh on every call.
type MacroClause struct {
	Params []Param
	Body   []token.Token
	Pos    token.Position
}

// MacroGroup is the ordered set of clauses sharing a name — the unit of
// dispatch. Clauses are tried in source order; the first one whose arity
// matches the call site wins.
type MacroGroup struct {
	Name    string
	Clauses []MacroClause
}

// DirectBody is a target whose recipe is written out inline:
// `do (H, D) -> (t, d) -> BODY .`
type DirectBody struct {
	BinderNames []string
	Body        []token.Token
}

// MacroDelegate is a target that hands its header off to a macro:
// `do (H, D) -> NAME .`
type MacroDelegate struct {
	MacroName string
}

// Target is one `do` form. Exactly one of Direct or Delegate is non-nil.
type Target struct {
	HeadExpr value.Value // a Str, the rule's LHS once resolved
	DepsExpr value.Value // a List of Strs, the rule's prerequisites
	Direct   *DirectBody
	Delegate *MacroDelegate
	Pos      token.Position
}

// File is the parsed contents of one source file: every binding, macro
// group, and target, in the order they were written.
type File struct {
	Bindings []Binding
	Macros   []MacroGroup
	Targets  []Target
}
