package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	testCases := []struct {
		name     string
		v        Value
		expected bool
	}{
		{name: "non-empty string", v: NewStr("yes"), expected: true},
		{name: "literal false string", v: NewStr("false"), expected: false},
		{name: "empty string", v: NewStr(""), expected: false},
		{name: "list is never truthy", v: NewList(NewStr("a")), expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.v.Truthy())
		})
	}
}

func TestEnvLookupOrder(t *testing.T) {
	globals := Globals{"x": NewStr("global")}
	env := NewEnv(globals)

	v, ok := env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, NewStr("global"), v)

	child := env.Child(map[string]Value{"x": NewStr("local")})
	v, ok = child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, NewStr("local"), v)

	// the parent frame is untouched by creating a child
	v, ok = env.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, NewStr("global"), v)

	_, ok = child.Lookup("missing")
	assert.False(t, ok)
}

func TestElementsOnlyForSequences(t *testing.T) {
	assert.Nil(t, NewStr("a").Elements())
	assert.Equal(t, []Value{NewStr("a")}, NewList(NewStr("a")).Elements())
	assert.Equal(t, []Value{NewStr("a")}, NewTuple(NewStr("a")).Elements())
}
