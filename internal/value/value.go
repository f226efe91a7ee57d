// Package value implements ngmake's four-shape value domain: Str, Atom,
// List, and Tuple. Only Str may survive into an emitted recipe;
// Atom/List/Tuple exist for the raw AST and for intermediate expansion
// results.
package value

// Kind tags which of the four value shapes a Value holds.
type Kind int

const (
	Str Kind = iota
	Atom
	List
	Tuple
)

func (k Kind) String() string {
	switch k {
	case Str:
		return "string"
	case Atom:
		return "atom"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the tagged union over the four shapes. Text holds the payload
// for Str and Atom; Items holds the payload for List and Tuple.
type Value struct {
	Kind  Kind
	Text  string
	Items []Value
}

// NewStr builds a literal string value.
func NewStr(s string) Value { return Value{Kind: Str, Text: s} }

// NewAtom builds an unresolved bare-identifier value. The parser does not
// produce Atoms: identifiers in bindings and target headers are resolved
// against the bindings table as they are parsed.
func NewAtom(name string) Value { return Value{Kind: Atom, Text: name} }

// NewList builds an ordered List value.
func NewList(items ...Value) Value { return Value{Kind: List, Items: items} }

// NewTuple builds an ordered Tuple value. Tuple is semantically
// indistinguishable from List in this revision of the language — the
// shapes are kept separate so the authored form (`[...]` vs `(...)`)
// survives for callers that care, such as the shape-error diagnostics
// that name a value's Kind.
func NewTuple(items ...Value) Value { return Value{Kind: Tuple, Items: items} }

// IsSequence reports whether v is a List or Tuple — the two shapes the
// spread operator may be applied to.
func (v Value) IsSequence() bool {
	return v.Kind == List || v.Kind == Tuple
}

// Elements returns v's items if v is a sequence, or nil otherwise.
func (v Value) Elements() []Value {
	if !v.IsSequence() {
		return nil
	}
	return v.Items
}

// Truthy implements the `boolean` expression's notion of truth: a
// non-empty Str other than the literal "false" is true.
func (v Value) Truthy() bool {
	return v.Kind == Str && v.Text != "" && v.Text != "false"
}
