package parser

import (
	"github.com/marekjm/ngmake/internal/ngerror"
	"github.com/marekjm/ngmake/internal/token"
)

// Split scans a fused token stream and cuts out the three kinds of
// top-level form slices ngmake recognizes, each running from its leading
// keyword to the next '.' token, inclusive. A `macro` slice naturally
// spans every `;`-separated clause in the group, because `;` — not `.`
// — separates clauses, so the scan only stops at the group's true
// terminator. Tokens that belong to no such slice (stray top-level
// garbage) are silently ignored.
func Split(file string, toks []token.Token) (lets, macros, dos [][]token.Token, err *ngerror.CompileError) {
	i := 0
	for i < len(toks) {
		kw := toks[i].Text
		if kw != "let" && kw != "macro" && kw != "do" {
			i++
			continue
		}

		j := i
		for j < len(toks) && toks[j].Text != "." {
			j++
		}
		if j >= len(toks) {
			return nil, nil, nil, ngerror.New(ngerror.InvalidSyntax,
				pos(file, toks[i].Pos), kw, "missing terminating '.'")
		}

		slice := toks[i : j+1]
		switch kw {
		case "let":
			lets = append(lets, slice)
		case "macro":
			macros = append(macros, slice)
		case "do":
			dos = append(dos, slice)
		}
		i = j + 1
	}
	return lets, macros, dos, nil
}

func pos(file string, p token.Position) ngerror.Position {
	return ngerror.Position{File: file, Line: p.Line, Column: p.Column}
}
