package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marekjm/ngmake/internal/compile"
)

func TestTargetFormat(t *testing.T) {
	target := compile.Target{
		Head:   "a",
		Deps:   []string{"b", "c"},
		Recipe: [][]string{{"cp", "b", "a"}, {"chmod", "+x", "a"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Target(&buf, target))
	assert.Equal(t, "a: b c\n\tcp b a\n\tchmod +x a\n\n", buf.String())
}

func TestTargetsFilterByName(t *testing.T) {
	ts := []compile.Target{
		{Head: "a", Recipe: [][]string{{"echo", "a"}}},
		{Head: "b", Recipe: [][]string{{"echo", "b"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Targets(&buf, ts, "b"))
	assert.Equal(t, "b:\n\techo b\n\n", buf.String())
}

func TestTargetsEmptyNameEmitsAll(t *testing.T) {
	ts := []compile.Target{
		{Head: "a", Recipe: [][]string{{"echo", "a"}}},
		{Head: "b", Recipe: [][]string{{"echo", "b"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Targets(&buf, ts, ""))
	assert.Equal(t, "a:\n\techo a\n\nb:\n\techo b\n\n", buf.String())
}
