package compile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marekjm/ngmake/internal/compile"
	"github.com/marekjm/ngmake/internal/emit"
)

func render(t *testing.T, source string) string {
	t.Helper()
	targets, err := compile.File("test.ng", source, "")
	require.Nil(t, err, "compile error: %v", err)

	var buf bytes.Buffer
	require.NoError(t, emit.Targets(&buf, targets, ""))
	return buf.String()
}

// TestWorkedScenarios reproduces every literal input/output pair from the
// language reference's conformance scenarios.
func TestWorkedScenarios(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "trivial target",
			source:   `do ('a', ['b']) -> (t, d) -> 'cp' d t .`,
			expected: "a: b\n\tcp b a\n\n",
		},
		{
			name: "global binding and reference",
			source: `
				let cxx = 'g++' .
				do ('o', ['s']) -> (t, d) -> cxx '-o' t d .
			`,
			expected: "o: s\n\tg++ -o o s\n\n",
		},
		{
			name: "macro with clause dispatch on arity",
			source: `
				macro c (s) -> 'g++' s ;
				      c (t, s) -> 'g++' '-o' t s .
				do ('x', ['y.c']) -> (t, d) -> c(t, d) .
			`,
			expected: "x: y.c\n\tg++ -o x y.c\n\n",
		},
		{
			name: "variadic with spread",
			source: `
				macro echo (...xs) -> 'echo' ...xs .
				do ('e', []) -> (t, d) -> echo('hi', 'there') .
			`,
			expected: "e:\n\techo hi there\n\n",
		},
		{
			name: "multi-step body via comma",
			source: `
				macro rm (t) -> 'rm' '-f' t .
				macro cp (t, s) -> 'cp' s t .
				do ('z', ['q']) -> (t, d) -> rm(t), cp(t, d) .
			`,
			expected: "z: q\n\trm -f z\n\tcp q z\n\n",
		},
		{
			name: "delegated target",
			source: `
				macro build (name, deps) -> 'mk' '-o' name ...deps .
				do ('p', ['a', 'b']) -> build .
			`,
			expected: "p: a b\n\tmk -o p a b\n\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, render(t, tc.source))
		})
	}
}

func TestTargetNameFilter(t *testing.T) {
	source := `
		do ('a', []) -> (t, d) -> 'echo' t .
		do ('b', []) -> (t, d) -> 'echo' t .
	`
	targets, err := compile.File("test.ng", source, "b")
	require.Nil(t, err)
	require.Len(t, targets, 1)

	var buf bytes.Buffer
	require.NoError(t, emit.Targets(&buf, targets, ""))
	assert.Equal(t, "b:\n\techo b\n\n", buf.String())
}

func TestTargetNameFilterSkipsCompilingOtherTargets(t *testing.T) {
	// a typo in an unselected target's body must not abort a selective
	// run: its body is never expanded when its head doesn't match.
	source := `
		do ('a', []) -> (t, d) -> 'echo' t .
		do ('b', []) -> (t, d) -> nope .
	`
	targets, err := compile.File("test.ng", source, "a")
	require.Nil(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "a", targets[0].Head)
}

func TestUndefinedNameIsFatal(t *testing.T) {
	_, err := compile.File("test.ng", `do ('a', []) -> (t, d) -> nope .`, "")
	require.NotNil(t, err)
	assert.Equal(t, "UndefinedName", string(err.Kind))
}

func TestNoMatchingClauseIsFatal(t *testing.T) {
	source := `
		macro c (s) -> 'g++' s .
		do ('a', []) -> (t, d) -> c(t, d, d) .
	`
	_, err := compile.File("test.ng", source, "")
	require.NotNil(t, err)
	assert.Equal(t, "NoMatchingClause", string(err.Kind))
}

func TestSpreadOnNonSequenceIsShapeError(t *testing.T) {
	source := `
		macro echo (x) -> 'echo' ...x .
		do ('a', []) -> (t, d) -> echo('hi') .
	`
	_, err := compile.File("test.ng", source, "")
	require.NotNil(t, err)
	assert.Equal(t, "ShapeError", string(err.Kind))
}

func TestIfElseDispatchThroughCompile(t *testing.T) {
	thenCase := render(t, `do ('a', []) -> (t, d) -> if true -> 'yes' else 'no' .`)
	assert.Equal(t, "a:\n\tyes\n\n", thenCase)

	elseCase := render(t, `do ('a', []) -> (t, d) -> if false -> 'yes' else 'no' .`)
	assert.Equal(t, "a:\n\tno\n\n", elseCase)
}

func TestBooleanDispatchThroughCompile(t *testing.T) {
	out := render(t, `
		macro empty () -> '' .
		do ('a', []) -> (t, d) -> boolean empty() .
	`)
	assert.Equal(t, "a:\n\tfalse\n\n", out)
}

func TestSpreadIdentity(t *testing.T) {
	direct := render(t, `
		macro echo (...xs) -> 'echo' ...xs .
		do ('a', []) -> (t, d) -> echo('hi', 'there') .
	`)
	spread := render(t, `
		let xs = ['hi', 'there'] .
		macro echo (...ys) -> 'echo' ...ys .
		do ('a', []) -> (t, d) -> echo(...xs) .
	`)
	assert.Equal(t, direct, spread)
}

func TestImmutabilityAcrossTargets(t *testing.T) {
	combined := render(t, `
		let cxx = 'g++' .
		do ('a', ['x']) -> (t, d) -> cxx '-o' t d .
		do ('b', ['y']) -> (t, d) -> cxx '-o' t d .
	`)
	a := render(t, `
		let cxx = 'g++' .
		do ('a', ['x']) -> (t, d) -> cxx '-o' t d .
	`)
	b := render(t, `
		let cxx = 'g++' .
		do ('b', ['y']) -> (t, d) -> cxx '-o' t d .
	`)
	assert.Equal(t, a+b, combined)
}
