// Package ngerror defines the compile-time diagnostics ngmake can raise.
//
// Every diagnostic is a CompileError carrying the position and literal text
// of the offending token, grounded on the (Position, Message, Phase) shape
// of a compiler-errors package elsewhere in this codebase's lineage, but
// fitted to the seven error kinds this language's front end distinguishes.
package ngerror

import "fmt"

// Kind enumerates the ways a source file can fail to compile.
type Kind string

const (
	InvalidSyntax          Kind = "InvalidSyntax"
	UndefinedName          Kind = "UndefinedName"
	UndefinedMacro         Kind = "UndefinedMacro"
	NoMatchingClause       Kind = "NoMatchingClause"
	ArityError             Kind = "ArityError"
	ShapeError             Kind = "ShapeError"
	ExpansionDepthExceeded Kind = "ExpansionDepthExceeded"
)

// Position locates a byte in a source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// CompileError is a fatal diagnostic: the first one raised aborts
// compilation. It is never wrapped further — it is constructed once, at
// the point a token fails a check, and printed as-is.
type CompileError struct {
	Kind    Kind
	Pos     Position
	Token   string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("error: %s: %s: %s", e.Pos, e.Token, e.Message)
}

// New builds a CompileError. tok is the literal text of the token that
// triggered the failure, used verbatim in the diagnostic.
func New(kind Kind, pos Position, tok string, format string, args ...any) *CompileError {
	return &CompileError{
		Kind:    kind,
		Pos:     pos,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}
