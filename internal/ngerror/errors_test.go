package ngerror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileErrorFormat(t *testing.T) {
	err := New(UndefinedName, Position{File: "a.ng", Line: 2, Column: 5}, "foo", "undefined name %q", "foo")
	assert.Equal(t, `error: a.ng:2:5: foo: undefined name "foo"`, err.Error())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "a.ng:1:0", Position{File: "a.ng", Line: 1, Column: 0}.String())
}
