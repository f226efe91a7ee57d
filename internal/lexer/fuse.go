package lexer

import "github.com/marekjm/ngmake/internal/token"

// FuseArrows replaces every '-' token immediately followed (in the token
// stream) by a '>' token with a single "->" token at the '-'s position.
// Run before FuseSpreads; the two fusions are independent but this is the
// fixed order the rest of the front end expects.
func FuseArrows(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if toks[i].Text == "-" && i+1 < len(toks) && toks[i+1].Text == ">" {
			out = append(out, token.Token{Text: "->", Pos: toks[i].Pos})
			i++
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// FuseSpreads scans left to right and replaces each group of three
// consecutive '.' tokens with a single "..." token at the first dot's
// position. Dots left over after grouping (a lone '.' used as the
// statement terminator, a pair, or the fourth dot of a run of four) are
// left untouched.
func FuseSpreads(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if toks[i].Text == "." && i+2 < len(toks) && toks[i+1].Text == "." && toks[i+2].Text == "." {
			out = append(out, token.Token{Text: "...", Pos: toks[i].Pos})
			i += 2
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// Collect drains a token channel into a slice. Used once lexing finishes
// so the rest of the pipeline can operate on a random-access token array —
// the recursive expander references half-open ranges into this same array
// rather than copying subsequences.
func Collect(tokens <-chan token.Token) []token.Token {
	var toks []token.Token
	for t := range tokens {
		toks = append(toks, t)
	}
	return toks
}
