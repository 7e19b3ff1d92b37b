package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSinkIndentation(t *testing.T) {
	s := NewBufferSink()
	require.NoError(t, s.Open("ignored.cpp"))
	s.PrintIndented("top\n")
	s.IncreaseDepth()
	s.PrintIndented("nested\n")
	s.IncreaseDepth()
	s.PrintIndented("double-nested\n")
	s.DecreaseDepth()
	s.DecreaseDepth()
	s.PrintIndented("back-to-top\n")

	assert.Equal(t, "top\n    nested\n        double-nested\nback-to-top\n", s.Content())
}

func TestBufferSinkDisableNextIndentIsOneShot(t *testing.T) {
	s := NewBufferSink()
	s.IncreaseDepth()
	s.DisableNextIndent()
	s.PrintIndented("same line\n")
	s.PrintIndented("indented again\n")

	assert.Equal(t, "same line\n    indented again\n", s.Content())
}

func TestOutputSinkFactoriesProduceDistinctKinds(t *testing.T) {
	var bufFactory OutputSinkFactory = BufferSinkFactory{}
	sink := bufFactory.CreateOutputSink()
	_, ok := sink.(*BufferSink)
	assert.True(t, ok)
}
