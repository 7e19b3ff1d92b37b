package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExprString(t *testing.T, src string) Expr {
	t.Helper()
	lex := NewLexer(NewSourceFile("test.mylang", src))
	p := NewParser(lex)
	e, err := p.parseExpr()
	require.Nil(t, err)
	return e
}

func TestExpressionPrecedenceRendering(t *testing.T) {
	e := parseExprString(t, "1 + 2 * 3.0")
	assert.Equal(t, "(1 + (2 * 3.0))", e.String())
}

func TestExpressionPrecedenceComparisonBindsLooserThanAdd(t *testing.T) {
	e := parseExprString(t, "a + 1 == b")
	assert.Equal(t, "((a + 1) == b)", e.String())
}

func TestExpressionPrecedenceLogicalBindsLoosestOfBinary(t *testing.T) {
	e := parseExprString(t, "a == b && c == d")
	assert.Equal(t, "((a == b) && (c == d))", e.String())
}

func TestAssignmentAcceptsIdentifierDesignator(t *testing.T) {
	e := parseExprString(t, "a = b")
	assert.Equal(t, "(a = b)", e.String())
}

func TestAssignmentAcceptsMemberAccessDesignator(t *testing.T) {
	e := parseExprString(t, "result.x = lhs.x - rhs.x")
	assert.Equal(t, "((result.x) = ((lhs.x) - (rhs.x)))", e.String())
}

func TestAssignmentAcceptsArrayAccessDesignator(t *testing.T) {
	e := parseExprString(t, "arr[0] = 1")
	assert.Equal(t, "((arr[0]) = 1)", e.String())
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	e := parseExprString(t, "a = b = c")
	assert.Equal(t, "(a = (b = c))", e.String())
}

func TestAssignmentRejectsNonDesignatorTarget(t *testing.T) {
	lex := NewLexer(NewSourceFile("test.mylang", "a + b = c"))
	p := NewParser(lex)
	_, err := p.parseExpr()
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "invalid assignment target")
}

func TestForLoopAllClausesOptional(t *testing.T) {
	lex := NewLexer(NewSourceFile("test.mylang", "for (;;) {}"))
	p := NewParser(lex)
	stmt, err := p.parseFor()
	require.Nil(t, err)
	assert.Nil(t, stmt.Init)
	assert.Nil(t, stmt.Cond)
	assert.Nil(t, stmt.Inc)
	assert.Empty(t, stmt.Body.Stmts)
}

func TestParseProgramModuleAndImports(t *testing.T) {
	src := `module vector;
import export shapes;
import util;

func_name: func = () {}
`
	lex := NewLexer(NewSourceFile("vector.mylang", src))
	p := NewParser(lex)
	mod, err := p.ParseProgram("vector.mylang")
	require.Nil(t, err)
	assert.Equal(t, "vector", mod.Name())
	require.Len(t, mod.Imports, 2)
	assert.Equal(t, "shapes", mod.Imports[0].NameTok.Lexeme)
	assert.True(t, mod.Imports[0].ShouldExport)
	assert.Equal(t, "util", mod.Imports[1].NameTok.Lexeme)
	assert.False(t, mod.Imports[1].ShouldExport)
	require.Len(t, mod.Decls, 1)
}
