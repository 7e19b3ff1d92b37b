package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceFileEOFIsIdempotent(t *testing.T) {
	f := NewSourceFile("empty.mylang", "")
	assert.True(t, f.IsFinished())
	first := f.Next()
	second := f.Next()
	assert.True(t, isEOFChar(first))
	assert.True(t, isEOFChar(second))
	assert.Equal(t, first, second)
}

func TestSourceFileTracksLineAndColumn(t *testing.T) {
	f := NewSourceFile("x.mylang", "ab\ncd")
	a := f.Next()
	assert.Equal(t, 1, a.Line)
	assert.Equal(t, 1, a.Column)
	b := f.Next()
	assert.Equal(t, 1, b.Line)
	assert.Equal(t, 2, b.Column)
	nl := f.Next()
	assert.Equal(t, '\n', nl.Char)
	c := f.Next()
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, 1, c.Column)
}
