package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marekjm/ngmake/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("test.ng", src)
	toks := Collect(l.Tokens())
	require.Nil(t, l.Err())
	return toks
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestLexBareWordsAndPunctuation(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected []string
	}{
		{
			name:     "bare words",
			source:   "let cxx",
			expected: []string{"let", "cxx"},
		},
		{
			name:     "punctuation split one at a time",
			source:   "do (a, b)",
			expected: []string{"do", "(", "a", ",", "b", ")"},
		},
		{
			name:     "underscore stays in a bare word",
			source:   "foo_bar",
			expected: []string{"foo_bar"},
		},
		{
			name:     "block comment is skipped",
			source:   "a /* ignore , me */ b",
			expected: []string{"a", "b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, texts(lexAll(t, tc.source)))
		})
	}
}

func TestLexQuotedStringsRetainDelimiters(t *testing.T) {
	toks := lexAll(t, `'a' "b" 'it\'s'`)
	assert.Equal(t, []string{`'a'`, `"b"`, `'it\'s'`}, texts(toks))
	assert.True(t, toks[0].IsQuoted())
	assert.Equal(t, "a", toks[0].Unquote())
	assert.Equal(t, "it's", toks[2].Unquote())
}

func TestLexUnterminatedStringIsFatal(t *testing.T) {
	l := New("test.ng", `'unterminated`)
	Collect(l.Tokens())
	require.NotNil(t, l.Err())
	assert.Equal(t, "InvalidSyntax", string(l.Err().Kind))
}

func TestFuseArrows(t *testing.T) {
	toks := lexAll(t, "a -> b")
	fused := FuseArrows(toks)
	assert.Equal(t, []string{"a", "->", "b"}, texts(fused))
	assert.Equal(t, toks[1].Pos, fused[1].Pos)
}

func TestFuseSpreadsOnlyExactlyThreeDots(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected []string
	}{
		{name: "three dots fuse", source: "... x", expected: []string{"...", "x"}},
		{name: "lone dot is untouched", source: ". x", expected: []string{".", "x"}},
		{name: "four dots fuse three then leave one", source: ".... x", expected: []string{"...", ".", "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := lexAll(t, tc.source)
			assert.Equal(t, tc.expected, texts(FuseSpreads(toks)))
		})
	}
}

// TestPositionPreservation checks that a fused token's position equals its
// first constituent token's position.
func TestPositionPreservation(t *testing.T) {
	toks := lexAll(t, "x - > y")
	fused := FuseArrows(toks)
	require.Len(t, fused, 3)
	assert.Equal(t, toks[1].Pos, fused[1].Pos)
}
