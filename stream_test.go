package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedStreamRewindInvariant(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	i := 0
	next := func() int {
		v := values[i]
		i++
		return v
	}
	s := NewBufferedStream(next)

	assert.Equal(t, 1, s.Accept())
	s.MarkCheckpoint()
	assert.Equal(t, 2, s.Accept())
	assert.Equal(t, 3, s.Accept())

	s.Rewind()

	// After rewind, replay must reproduce exactly what was accepted since
	// the checkpoint, in original order.
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 3, s.Next())
	assert.Equal(t, 4, s.Next())
}

func TestBufferedStreamPeekDoesNotConsume(t *testing.T) {
	values := []string{"a", "b", "c"}
	i := 0
	s := NewBufferedStream(func() string {
		v := values[i]
		i++
		return v
	})

	assert.Equal(t, "b", s.Peek(1))
	assert.Equal(t, "a", s.Peek(0))
	assert.Equal(t, "a", s.Next())
	assert.Equal(t, "b", s.Next())
}

func TestBufferedStreamClearHistoryKeepsStreamPosition(t *testing.T) {
	values := []int{1, 2, 3}
	i := 0
	s := NewBufferedStream(func() int {
		v := values[i]
		i++
		return v
	})

	s.Accept()
	s.MarkCheckpoint()
	s.Accept()
	s.ClearHistory()
	assert.Equal(t, 3, s.Next())
}
