// Package lexer turns ngmake source bytes into a token stream.
//
// The state-function-over-a-channel shape follows the plan9 mk lexer: a
// stateFn is simultaneously the lexer's current state and the next
// action it will perform, and tokens are delivered on a channel as they
// are recognized rather than collected into a slice up front.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
)

const eof rune = 0

// asciiPunctuation is the set of bytes that, outside of quotes, are emitted
// as standalone single-character tokens. It excludes '"', '\'' (quote
// delimiters) and '_' (a bare-word character) — a deliberate narrowing of
// the set used by ngmake's original prototype, whose lexer split on
// string.punctuation minus only the quote characters, '_' included.
const asciiPunctuation = "!#$%&()*+,-./:;<=>?@[\\]^`{|}~"

func isPunct(c rune) bool {
	return c != eof && strings.ContainsRune(asciiPunctuation, c)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Lexer produces a token.Token stream from source text. Use New, then
// drain Tokens() until it closes; if Err() is non-nil afterward, the last
// tokens before the error are still valid but the stream is incomplete.
type Lexer struct {
	input string
	out   chan token.Token

	pos  int // byte offset of the next unread byte
	line int // 0-based
	col  int // 0-based, in runes

	start, startLine, startCol int

	file string
	err  *ngerror.CompileError
}

// New starts lexing input in the background and returns the lexer handle.
// file is used only to annotate errors.
func New(file, input string) *Lexer {
	l := &Lexer{
		input: input,
		out:   make(chan token.Token),
		file:  file,
	}
	go l.run()
	return l
}

// Tokens returns the channel on which recognized tokens are delivered. It
// closes when lexing finishes, successfully or not.
func (l *Lexer) Tokens() <-chan token.Token {
	return l.out
}

// Err returns the fatal lexing error, if any, once Tokens() has closed.
func (l *Lexer) Err() *ngerror.CompileError {
	return l.err
}

type stateFn func(*Lexer) stateFn

func (l *Lexer) run() {
	for state := lexTopLevel; state != nil; {
		state = state(l)
	}
	close(l.out)
}

func (l *Lexer) peek() rune {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) rune {
	pos := l.pos
	var c rune
	var w int
	for i := 0; i <= n; i++ {
		if pos >= len(l.input) {
			return eof
		}
		c, w = utf8.DecodeRuneInString(l.input[pos:])
		pos += w
	}
	return c
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	c, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return c
}

// markStart records the position of the byte about to be consumed as the
// beginning of the next token.
func (l *Lexer) markStart() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

func (l *Lexer) emit() {
	l.out <- token.Token{
		Text: l.input[l.start:l.pos],
		Pos:  token.Position{Line: l.startLine, Column: l.startCol},
	}
	l.markStart()
}

func (l *Lexer) fatal(kind ngerror.Kind, pos token.Position, tok string, format string, args ...any) stateFn {
	l.err = ngerror.New(kind, ngerror.Position{File: l.file, Line: pos.Line, Column: pos.Column}, tok, format, args...)
	return nil
}

func lexTopLevel(l *Lexer) stateFn {
	for {
		for isSpace(l.peek()) {
			l.next()
		}
		if l.peek() == '/' && l.peekN(1) == '*' {
			if s := lexComment(l); s == nil {
				return nil
			}
			continue
		}
		break
	}

	if l.peek() == eof {
		return nil
	}

	l.markStart()
	c := l.peek()
	switch {
	case c == '\'' || c == '"':
		return lexQuoted
	case isPunct(c):
		l.next()
		l.emit()
		return lexTopLevel
	default:
		return lexBareWord
	}
}

// lexComment skips a /* ... */ block comment. Comments do not nest;
// newlines inside are still counted towards line/column tracking.
func lexComment(l *Lexer) stateFn {
	startLine, startCol := l.line, l.col
	l.next() // '/'
	l.next() // '*'
	for {
		if l.peek() == eof {
			return l.fatal(ngerror.InvalidSyntax,
				token.Position{Line: startLine, Column: startCol}, "/*",
				"unterminated block comment")
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.next()
			l.next()
			return lexTopLevel
		}
		l.next()
	}
}

// lexQuoted consumes a quoted string, retaining its surrounding quotes in
// the emitted token. A backslash escapes the following character,
// including the closing quote.
func lexQuoted(l *Lexer) stateFn {
	startLine, startCol := l.startLine, l.startCol
	quote := l.next() // opening quote
	for {
		c := l.peek()
		if c == eof {
			return l.fatal(ngerror.InvalidSyntax,
				token.Position{Line: startLine, Column: startCol}, string(quote),
				"unterminated string literal")
		}
		l.next()
		if c == '\\' {
			if l.peek() != eof {
				l.next()
			}
			continue
		}
		if c == quote {
			break
		}
	}
	l.emit()
	return lexTopLevel
}

// lexBareWord consumes an identifier: everything up to the next piece of
// whitespace, standalone punctuation, or quote.
func lexBareWord(l *Lexer) stateFn {
	for {
		c := l.peek()
		if c == eof || isSpace(c) || isPunct(c) || c == '\'' || c == '"' {
			break
		}
		l.next()
	}
	l.emit()
	return lexTopLevel
}
