package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFuncBody(t *testing.T, src string) *FuncDecl {
	t.Helper()
	lex := NewLexer(NewSourceFile("test.mylang", "module m;\n"+src))
	p := NewParser(lex)
	mod, err := p.ParseProgram("test.mylang")
	require.Nil(t, err, "%v", err)
	require.Len(t, mod.Decls, 1)
	fn, ok := mod.Decls[0].(*FuncDecl)
	require.True(t, ok)
	return fn
}

func TestJumpCheckerRejectsBreakOutsideLoop(t *testing.T) {
	fn := parseFuncBody(t, "f: func = () { break; }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.True(t, errs.HasErrors())
}

func TestJumpCheckerAllowsBreakInsideFor(t *testing.T) {
	fn := parseFuncBody(t, "f: func = () { for (;;) { break; } }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.False(t, errs.HasErrors())
}

func TestJumpCheckerAllowsContinueInsideWhile(t *testing.T) {
	fn := parseFuncBody(t, "f: func = () { while (true) { continue; } }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.False(t, errs.HasErrors())
}

func TestJumpCheckerRejectsBreakAfterLoopExits(t *testing.T) {
	// The break here is a sibling statement after the for-loop closes, not
	// nested inside it, so loop depth must have dropped back to 0.
	fn := parseFuncBody(t, "f: func = () { for (;;) { } break; }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.True(t, errs.HasErrors())
}

func TestJumpCheckerAllowsBreakInsideNestedIfWithinLoop(t *testing.T) {
	fn := parseFuncBody(t, "f: func = () { for (;;) { if (true) { break; } } }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.False(t, errs.HasErrors())
}

func TestJumpCheckerReturnNeverRestricted(t *testing.T) {
	fn := parseFuncBody(t, "f: func = () { return; }")
	errs := NewErrorCollector(10)
	CheckJumps(fn, errs)
	assert.False(t, errs.HasErrors())
}
